package config

import (
	"errors"
	"fmt"
	"github.com/alvinbaena/pwd-analyzer/internal/util"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"io/fs"
	"reflect"
	"strings"
)

const envPrefix = "PWD_"

// Config holds every setting of the analyzer. Each field maps to a PWD_
// prefixed environment variable and may be overridden by a command line flag.
type Config struct {
	Dictionary       string  `mapstructure:"PWD_DICTIONARY" validate:"required"`
	GuessesPerSecond float64 `mapstructure:"PWD_GUESSES_PER_SECOND" validate:"gt=0"`
	NoColor          bool    `mapstructure:"PWD_NO_COLOR"`
	Port             uint16  `mapstructure:"PWD_PORT" validate:"required"`
	SelfTLS          bool    `mapstructure:"PWD_SELF_TLS"`
	TLSCert          string  `mapstructure:"PWD_TLS_CERT" validate:"required_with=TLSKey"`
	TLSKey           string  `mapstructure:"PWD_TLS_KEY" validate:"required_with=TLSCert"`
	CacheSize        int64   `mapstructure:"PWD_CACHE_SIZE" validate:"gte=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PWD_DICTIONARY", "common_passwords.txt")
	v.SetDefault("PWD_GUESSES_PER_SECOND", 1e10)
	v.SetDefault("PWD_PORT", 3100)
	v.SetDefault("PWD_CACHE_SIZE", 10000)
}

func bindEnvs(v *viper.Viper, iface interface{}, parts ...string) {
	ifv := reflect.ValueOf(iface)
	ift := reflect.TypeOf(iface)
	for i := 0; i < ift.NumField(); i++ {
		fv := ifv.Field(i)
		t := ift.Field(i)
		tv, ok := t.Tag.Lookup("mapstructure")
		if !ok {
			continue
		}
		switch fv.Kind() {
		case reflect.Struct:
			bindEnvs(v, fv.Interface(), append(parts, tv)...)
		default:
			_ = v.BindEnv(strings.Join(append(parts, tv), "."))
		}
	}
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "required_with":
		return fmt.Sprintf("This field requires the presence of %s", envName(fe.Param()))
	case "gt":
		return fmt.Sprintf("This field must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("This field must be at least %s", fe.Param())
	}
	return fe.Error() // default error
}

func envName(field string) string {
	return envPrefix + util.ToScreamingSnakeCase(field)
}

// Load reads the configuration from the global viper instance, where the
// command line flags are bound.
func Load() (Config, error) {
	// A missing .env file is the common case
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("error loading .env file")
	}

	return LoadFrom(viper.GetViper())
}

// LoadFrom reads and validates the configuration from v. All validation
// failures are reported together.
func LoadFrom(v *viper.Viper) (config Config, err error) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	// I hate this, but it works.
	// This is to not require a config file to unmarshal Envs in a struct
	// https://github.com/spf13/viper/issues/188#issuecomment-399884438
	config = Config{}
	bindEnvs(v, config)

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("error reading configuration: %w", err)
	}

	validate := validator.New()
	if err = validate.Struct(&config); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return config, err
		}

		var result *multierror.Error
		for _, fe := range ve {
			result = multierror.Append(result, fmt.Errorf("%s: %s", envName(fe.Field()), msgForTag(fe)))
		}
		return config, result.ErrorOrNil()
	}

	return config, nil
}
