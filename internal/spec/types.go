package spec

// Config defines the pipeline configuration schema loaded from .surveygen.yml.
type Config struct {
	Version            int          `yaml:"version"`
	Input              string       `yaml:"input"`
	Codebook           string       `yaml:"codebook"`
	DemographicColumns []string     `yaml:"demographic_columns"`
	ResponseColumns    []string     `yaml:"response_columns"`
	QuestionText       []string     `yaml:"question_text"`
	Perspective        string       `yaml:"perspective"`
	Seed               int64        `yaml:"seed"`
	Output             OutputConfig `yaml:"output"`
}

// OutputConfig controls where generated tables are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// Perspective values accepted by the prompt assembler.
const (
	PerspectiveSecondPerson = "second_person"
	PerspectiveThirdPerson  = "third_person"
)
