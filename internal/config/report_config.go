package config

// ReportConfig describes optional report destinations beyond standard
// output. The output file path comes from the command line, not from here.
type ReportConfig struct {
	S3 *S3SinkConfig `mapstructure:"s3,omitempty" json:"s3,omitempty"`
}

// S3SinkConfig describes an S3 bucket the machine-readable report is
// uploaded to after each run.
type S3SinkConfig struct {
	Enabled   bool   `mapstructure:"enabled,omitempty" json:"enabled,omitempty"`
	Bucket    string `mapstructure:"bucket" json:"bucket"`
	KeyPrefix string `mapstructure:"key_prefix,omitempty" json:"key_prefix,omitempty"`
	Region    string `mapstructure:"region,omitempty" json:"region,omitempty"`
}
