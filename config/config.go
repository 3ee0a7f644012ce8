package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	defaultTokenIssuer   = "server"
	defaultTokenAudience = "web"
	defaultTokenValidity = 30 * 24 * time.Hour
	defaultPrivateKey    = "private.pem"
	defaultPublicKey     = "public.pem"

	// argon2id parameters of the reference implementation (RFC 9106 second recommendation).
	defaultArgon2Memory      = 19 * 1024
	defaultArgon2Iterations  = 2
	defaultArgon2Parallelism = 1
	defaultArgon2SaltLength  = 16
	defaultArgon2KeyLength   = 32

	defaultCodeLength  = 6
	defaultMaxAttempts = 5
	// DefaultCodeAlphabet leaves out characters that are easy to confuse when read aloud or
	// typed: 0/O, 1/l/I.
	DefaultCodeAlphabet = "23456789abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"

	defaultQRCodeSize = 256
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Migrations controls the embedded schema migrations run at start-up
	Migrations *MigrationsConfig `json:"migrations" yaml:"migrations"`

	// Token configuration for session token issuance and verification
	Token *TokenConfig `json:"token" yaml:"token"`

	// Argon2 configuration for password hashing
	Argon2 *Argon2Config `json:"argon2" yaml:"argon2"`

	// Link configuration for short code generation
	Link *LinkConfig `json:"link" yaml:"link"`

	// QRCode configuration for short link QR codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// PubSub configuration for event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// MigrationsConfig defines schema migration behaviour
type MigrationsConfig struct {
	// Disabled skips goose migrations on start-up (schema managed elsewhere)
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// TokenConfig defines session token configuration.
//
// Key material is taken from the inline PEM fields when both are set, otherwise the two
// objects named PrivateKeyName and PublicKeyName are read from KeyBucketURL.
type TokenConfig struct {
	Issuer   string        `json:"issuer" yaml:"issuer"`
	Audience string        `json:"audience" yaml:"audience"`
	Validity time.Duration `json:"validity" yaml:"validity"`

	// Leeway widens the accepted time window on both sides. Defaults to Validity when unset;
	// an explicit 0s disables it.
	Leeway *time.Duration `json:"leeway" yaml:"leeway"`

	PrivateKeyPEM string `json:"privateKeyPem" yaml:"privateKeyPem"`
	PublicKeyPEM  string `json:"publicKeyPem" yaml:"publicKeyPem"`

	// Bucket URL understood by gocloud.dev/blob, e.g. file:///etc/shortlink/keys or gs://bucket
	KeyBucketURL   string `json:"keyBucketUrl" yaml:"keyBucketUrl"`
	PrivateKeyName string `json:"privateKeyName" yaml:"privateKeyName"`
	PublicKeyName  string `json:"publicKeyName" yaml:"publicKeyName"`
}

// Argon2Config defines argon2id cost parameters
type Argon2Config struct {
	Memory      uint32 `json:"memory" yaml:"memory"` // KiB
	Iterations  uint32 `json:"iterations" yaml:"iterations"`
	Parallelism uint8  `json:"parallelism" yaml:"parallelism"`
	SaltLength  uint32 `json:"saltLength" yaml:"saltLength"`
	KeyLength   uint32 `json:"keyLength" yaml:"keyLength"`
}

// LinkConfig defines short code generation
type LinkConfig struct {
	CodeLength int    `json:"codeLength" yaml:"codeLength"`
	Alphabet   string `json:"alphabet" yaml:"alphabet"`

	// Number of fresh codes tried when the generated code collides with an existing one
	MaxAttempts int `json:"maxAttempts" yaml:"maxAttempts"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`

	// Public base URL of short links. When empty the QR code encodes the target URL.
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: TOKEN_KEYBUCKETURL -> token.keyBucketUrl
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// ApplyDefaults fills every optional section that the config file left empty.
func (cfg *Config) ApplyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Token == nil {
		cfg.Token = &TokenConfig{}
	}
	if cfg.Token.Issuer == "" {
		cfg.Token.Issuer = defaultTokenIssuer
	}
	if cfg.Token.Audience == "" {
		cfg.Token.Audience = defaultTokenAudience
	}
	if cfg.Token.Validity <= 0 {
		cfg.Token.Validity = defaultTokenValidity
	}
	if cfg.Token.Leeway == nil || *cfg.Token.Leeway < 0 {
		leeway := cfg.Token.Validity
		cfg.Token.Leeway = &leeway
	}
	if cfg.Token.PrivateKeyName == "" {
		cfg.Token.PrivateKeyName = defaultPrivateKey
	}
	if cfg.Token.PublicKeyName == "" {
		cfg.Token.PublicKeyName = defaultPublicKey
	}

	if cfg.Argon2 == nil {
		cfg.Argon2 = &Argon2Config{}
	}
	if cfg.Argon2.Memory == 0 {
		cfg.Argon2.Memory = defaultArgon2Memory
	}
	if cfg.Argon2.Iterations == 0 {
		cfg.Argon2.Iterations = defaultArgon2Iterations
	}
	if cfg.Argon2.Parallelism == 0 {
		cfg.Argon2.Parallelism = defaultArgon2Parallelism
	}
	if cfg.Argon2.SaltLength == 0 {
		cfg.Argon2.SaltLength = defaultArgon2SaltLength
	}
	if cfg.Argon2.KeyLength == 0 {
		cfg.Argon2.KeyLength = defaultArgon2KeyLength
	}

	if cfg.Link == nil {
		cfg.Link = &LinkConfig{}
	}
	if cfg.Link.CodeLength <= 0 {
		cfg.Link.CodeLength = defaultCodeLength
	}
	if cfg.Link.Alphabet == "" {
		cfg.Link.Alphabet = DefaultCodeAlphabet
	}
	if cfg.Link.MaxAttempts <= 0 {
		cfg.Link.MaxAttempts = defaultMaxAttempts
	}

	if cfg.QRCode == nil {
		cfg.QRCode = &QRCodeConfig{}
	}
	if cfg.QRCode.Size <= 0 {
		cfg.QRCode.Size = defaultQRCodeSize
	}
	if cfg.QRCode.ErrorCorrectionLevel == "" {
		cfg.QRCode.ErrorCorrectionLevel = "M"
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
