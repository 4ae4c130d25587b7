package main

// User-facing strings for the lofarcfg CLI
const (
	MsgRootShort = "Resolve LOFAR source-detection training configurations"
	MsgRootLong  = `lofarcfg resolves the training configuration for a LOFAR source-detection
fine-tuning run: it loads a base template, applies overlay documents on top
of the built-in defaults, validates every hyperparameter, and emits a frozen
configuration for the trainer.

Overlays may only refine keys that already exist in the base schema; the
resolver rejects unknown keys and reports every invalid value in one pass.`

	MsgResolveShort = "Resolve and freeze a configuration"
	MsgResolveLong  = `Resolve a configuration from the built-in defaults, an optional base
template, overlay files, LOFARCFG_ environment variables, and --set pairs,
then print or write the frozen result.`
	MsgResolveExample = `  # Resolve the built-in defaults
  lofarcfg resolve

  # Base template plus two overlays, frozen to a file
  lofarcfg resolve configs/source_frcnn_101.yaml \
      -o overlays/alice.yaml -o overlays/quick.yaml -O frozen.yaml

  # One-off override
  lofarcfg resolve configs/source_frcnn_101.yaml --set SOLVER.BASE_LR=0.001`

	MsgValidateShort = "Validate a configuration and report every violation"
	MsgValidateLong  = `Run the same layering as resolve, then report every type and range
violation at once instead of stopping at the first.`

	MsgGetShort = "Print a single resolved value"
	MsgGetLong  = `Resolve the configuration and print the value at one dotted key path,
for example SOLVER.BASE_LR or MODEL.ROI_HEADS.NUM_CLASSES.`

	MsgSchemaShort = "Show the configuration schema reference"

	MsgVersionShort = "Print version information"

	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagOverlay = "Overlay document applied after the base (repeatable, later wins)"
	MsgFlagSet     = "Override a single key, KEY=VALUE (repeatable, wins over overlays)"
	MsgFlagNoEnv   = "Ignore LOFARCFG_ environment overrides"
	MsgFlagFormat  = "Output format: yaml or toml"
	MsgFlagOutput  = "Write the frozen configuration to this file instead of stdout"
)
