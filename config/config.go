package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-pg/pg/v10"
	"github.com/joho/godotenv"
)

const (
	DefaultTokenTTL  = 8 * time.Hour
	DefaultMaxUpload = 10 << 20
)

type Config struct {
	Database pg.Options
	App      struct {
		Host       string
		Port       int
		LogQueries bool
		// TrustedProxies lists CIDR ranges of reverse proxies whose X-Forwarded-For is used.
		TrustedProxies []string
	}
	Auth      AuthConfig
	SMTP      SMTPConfig
	Upload    UploadConfig
	Articles  ArticlesConfig
	Comments  CommentsConfig
	RateLimit RateLimitConfig
}

type AuthConfig struct {
	JWTSecret     string
	AdminUsername string
	AdminPassword string
	TokenTTL      time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// To receives contact form messages; From is used when empty.
	To string
}

type UploadConfig struct {
	Endpoint   string
	PrivateKey string
	Folder     string
	MaxSize    int64
}

type ArticlesConfig struct {
	// SanitizeHTML runs editor markup through the UGC policy before it is stored.
	SanitizeHTML bool
}

type CommentsConfig struct {
	AutoApprove bool
}

type RateLimitConfig struct {
	// RPS is the steady rate of public write requests per client ip, 0 disables limiting.
	RPS   float64
	Burst int
}

// Overrides are values taken from flags or the environment. Empty values are ignored.
type Overrides struct {
	DatabaseURL      string
	JWTSecret        string
	AdminUsername    string
	AdminPassword    string
	SMTPHost         string
	SMTPPort         string
	SMTPUser         string
	SMTPPassword     string
	SMTPFrom         string
	UploadPrivateKey string
	Port             int
}

// Default returns a config with every optional value set.
func Default() Config {
	var cfg Config
	cfg.Database.Addr = "localhost:5432"
	cfg.App.Port = 3000
	cfg.Auth.TokenTTL = DefaultTokenTTL
	cfg.SMTP.Port = 587
	cfg.Upload.Endpoint = "https://upload.imagekit.io/api/v1/files/upload"
	cfg.Upload.MaxSize = DefaultMaxUpload
	cfg.Comments.AutoApprove = true
	cfg.RateLimit.RPS = 1
	cfg.RateLimit.Burst = 5
	return cfg
}

// Load reads the TOML file over the defaults. A missing file leaves the defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	_, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}

	return cfg, nil
}

// LoadEnv loads a dotenv file into the process environment when it exists.
func LoadEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (c *Config) Apply(o Overrides) error {
	if o.DatabaseURL != "" {
		opt, err := pg.ParseURL(o.DatabaseURL)
		if err != nil {
			return fmt.Errorf("parse database url: %w", err)
		}
		opt.PoolSize = c.Database.PoolSize
		c.Database = *opt
	}

	setString(&c.Auth.JWTSecret, o.JWTSecret)
	setString(&c.Auth.AdminUsername, o.AdminUsername)
	setString(&c.Auth.AdminPassword, o.AdminPassword)
	setString(&c.SMTP.Host, o.SMTPHost)
	setString(&c.SMTP.Username, o.SMTPUser)
	setString(&c.SMTP.Password, o.SMTPPassword)
	setString(&c.SMTP.From, o.SMTPFrom)
	setString(&c.Upload.PrivateKey, o.UploadPrivateKey)

	if o.SMTPPort != "" {
		port, err := strconv.Atoi(o.SMTPPort)
		if err != nil {
			return fmt.Errorf("parse smtp port: %w", err)
		}
		c.SMTP.Port = port
	}

	if o.Port > 0 {
		c.App.Port = o.Port
	}

	return nil
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth: jwt secret is required"))
	}
	if c.Auth.AdminUsername == "" || c.Auth.AdminPassword == "" {
		errs = append(errs, errors.New("auth: admin username and password are required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("auth: token ttl must be positive, got %s", c.Auth.TokenTTL))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("app: invalid port %d", c.App.Port))
	}
	if c.RateLimit.RPS < 0 {
		errs = append(errs, errors.New("rate limit: rps must not be negative"))
	}
	if _, err := c.TrustedProxyNets(); err != nil {
		errs = append(errs, fmt.Errorf("app: %w", err))
	}

	return errors.Join(errs...)
}

// TrustedProxyNets parses App.TrustedProxies. A bare address is treated as a single host.
func (c Config) TrustedProxyNets() ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(c.App.TrustedProxies))
	for _, s := range c.App.TrustedProxies {
		if ip := net.ParseIP(s); ip != nil {
			bits := 8 * net.IPv6len
			if ip4 := ip.To4(); ip4 != nil {
				ip, bits = ip4, 8*net.IPv4len
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}

		_, ipNet, err := net.ParseCIDR(s)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q", s)
		}
		nets = append(nets, ipNet)
	}
	return nets, nil
}

// DatabaseURL renders the connection options as a postgres url, used for migrations.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Database.User, c.Database.Password),
		Host:   c.Database.Addr,
		Path:   "/" + c.Database.Database,
	}
	if c.Database.TLSConfig == nil {
		u.RawQuery = "sslmode=disable"
	}
	return u.String()
}
