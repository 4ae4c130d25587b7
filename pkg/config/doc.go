// Package config resolves the training configuration for a LOFAR
// source-detection run. It loads a detectron2-style base template, resolves
// its _BASE_ composition chain, overlays refinement documents on top of the
// built-in defaults, validates the result, and produces the frozen
// configuration handed to the external trainer.
package config
