package config

type Storage struct {
	SQLite *SQLLiteStorage `mapstructure:"local,omitempty"`
}

type SQLLiteStorage struct {
	Path string `mapstructure:"path,omitempty"`
}

// Media selects where uploaded gift images live.
type Media struct {
	Type  string      `mapstructure:"type"` // "local" or "s3"
	Local *LocalMedia `mapstructure:"local,omitempty"`
	S3    *S3Media    `mapstructure:"s3,omitempty"`
}

type LocalMedia struct {
	Path string `mapstructure:"path"` // filesystem directory
	URL  string `mapstructure:"url"`  // public URL prefix the directory is served under
}

type S3Media struct {
	Endpoint  string `mapstructure:"endpoint"` // empty for AWS, set for MinIO
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	// PublicURL is the prefix public object URLs are built from,
	// e.g. https://cdn.example.com/gift-images.
	PublicURL string `mapstructure:"public_url"`
}
