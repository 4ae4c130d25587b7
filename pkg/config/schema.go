package config

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/jacobbieker/LOFAR-ML/pkg/errors"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// ResolvedConfig is the validated, fully-typed projection of a merged
// document. It is never mutated after resolution and is safe for concurrent
// readers in the trainer.
type ResolvedConfig struct {
	Version    int              `koanf:"VERSION"`
	Model      ModelConfig      `koanf:"MODEL"`
	Input      InputConfig      `koanf:"INPUT"`
	Datasets   DatasetsConfig   `koanf:"DATASETS"`
	Dataloader DataloaderConfig `koanf:"DATALOADER"`
	Solver     SolverConfig     `koanf:"SOLVER"`
	Test       TestConfig       `koanf:"TEST"`
	OutputDir  string           `koanf:"OUTPUT_DIR"`
	Seed       int              `koanf:"SEED"`
}

// ModelConfig holds the detection architecture hyperparameters. They are
// passed through to the trainer unmodified.
type ModelConfig struct {
	MetaArchitecture string                `koanf:"META_ARCHITECTURE"`
	Weights          string                `koanf:"WEIGHTS"`
	MaskOn           bool                  `koanf:"MASK_ON"`
	PixelMean        []float64             `koanf:"PIXEL_MEAN"`
	PixelStd         []float64             `koanf:"PIXEL_STD"`
	Backbone         BackboneConfig        `koanf:"BACKBONE"`
	ResNets          ResNetsConfig         `koanf:"RESNETS"`
	FPN              FPNConfig             `koanf:"FPN"`
	AnchorGenerator  AnchorGeneratorConfig `koanf:"ANCHOR_GENERATOR"`
	RPN              RPNConfig             `koanf:"RPN"`
	ROIHeads         ROIHeadsConfig        `koanf:"ROI_HEADS"`
}

type BackboneConfig struct {
	Name     string `koanf:"NAME"`
	FreezeAt int    `koanf:"FREEZE_AT"`
}

type ResNetsConfig struct {
	Depth         int  `koanf:"DEPTH"`
	NumGroups     int  `koanf:"NUM_GROUPS"`
	WidthPerGroup int  `koanf:"WIDTH_PER_GROUP"`
	StrideIn1x1   bool `koanf:"STRIDE_IN_1X1"`
}

type FPNConfig struct {
	InFeatures  []string `koanf:"IN_FEATURES"`
	OutChannels int      `koanf:"OUT_CHANNELS"`
}

type AnchorGeneratorConfig struct {
	Sizes        [][]float64 `koanf:"SIZES"`
	AspectRatios [][]float64 `koanf:"ASPECT_RATIOS"`
}

type RPNConfig struct {
	PreNMSTopkTrain  int `koanf:"PRE_NMS_TOPK_TRAIN"`
	PostNMSTopkTrain int `koanf:"POST_NMS_TOPK_TRAIN"`
}

type ROIHeadsConfig struct {
	NumClasses        int     `koanf:"NUM_CLASSES"`
	BatchSizePerImage int     `koanf:"BATCH_SIZE_PER_IMAGE"`
	ScoreThreshTest   float64 `koanf:"SCORE_THRESH_TEST"`
}

// InputConfig bounds image sizes fed to the model
type InputConfig struct {
	MinSizeTrain []int  `koanf:"MIN_SIZE_TRAIN"`
	MaxSizeTrain int    `koanf:"MAX_SIZE_TRAIN"`
	MinSizeTest  int    `koanf:"MIN_SIZE_TEST"`
	MaxSizeTest  int    `koanf:"MAX_SIZE_TEST"`
	Format       string `koanf:"FORMAT"`
}

type DatasetsConfig struct {
	Train []string `koanf:"TRAIN"`
	Val   []string `koanf:"VAL"`
	Test  []string `koanf:"TEST"`
}

type DataloaderConfig struct {
	NumWorkers int `koanf:"NUM_WORKERS"`
}

// SolverConfig holds the optimizer schedule
type SolverConfig struct {
	ImsPerBatch      int     `koanf:"IMS_PER_BATCH"`
	BaseLR           float64 `koanf:"BASE_LR"`
	Gamma            float64 `koanf:"GAMMA"`
	Steps            []int   `koanf:"STEPS"`
	MaxIter          int     `koanf:"MAX_ITER"`
	WarmupIters      int     `koanf:"WARMUP_ITERS"`
	CheckpointPeriod int     `koanf:"CHECKPOINT_PERIOD"`
}

type TestConfig struct {
	EvalPeriod         int `koanf:"EVAL_PERIOD"`
	DetectionsPerImage int `koanf:"DETECTIONS_PER_IMAGE"`
}

// unmarshalResolved projects a merged document onto the typed schema
func unmarshalResolved(doc *Document) (*ResolvedConfig, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(doc.Data(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load merged document")
	}

	var cfg ResolvedConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "failed to unmarshal configuration")
	}
	return &cfg, nil
}
