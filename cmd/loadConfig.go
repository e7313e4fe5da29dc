package cmd

import (
	"errors"
	"os"

	thrown "github.com/0chain/errors"
	"github.com/0chain/s3mgrt/model"
	"github.com/0chain/s3mgrt/util"
	zerrors "github.com/0chain/s3mgrt/zErrors"
	"github.com/spf13/viper"
)

var ErrBadParsing = errors.New("parsing error")

// Older config files name the sides from and to.
var sideAliases = map[string]string{
	"source":      "from",
	"destination": "to",
}

func loadConfigFile(file string) (model.AppConfig, error) {
	var cfg model.AppConfig

	if _, err := util.Fs.Stat(file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, zerrors.Wrap(zerrors.MissingConfigErrCode, file, err)
		}
		return cfg, err
	}

	v := viper.New()
	v.SetConfigFile(file)

	if err := v.ReadInConfig(); err != nil {
		return cfg, thrown.Throw(ErrBadParsing, err.Error())
	}

	return LoadConfig(v)
}

// LoadConfig decodes and validates both endpoint sides.
func LoadConfig(v *viper.Viper) (model.AppConfig, error) {
	cfg := model.AppConfig{
		Source:      model.DefaultEndpointConfig(),
		Destination: model.DefaultEndpointConfig(),
	}

	// Decoding only overwrites the fields present in the file.
	sides := map[string]*model.EndpointConfig{
		"source":      &cfg.Source,
		"destination": &cfg.Destination,
	}
	for key, side := range sides {
		if !v.IsSet(key) && v.IsSet(sideAliases[key]) {
			key = sideAliases[key]
		}
		if err := v.UnmarshalKey(key, side); err != nil {
			return cfg, thrown.Throw(ErrBadParsing, err.Error())
		}
	}

	if err := cfg.Source.Validate("source"); err != nil {
		return cfg, zerrors.New(zerrors.InvalidConfigErrCode, err.Error())
	}
	if err := cfg.Destination.Validate("destination"); err != nil {
		return cfg, zerrors.New(zerrors.InvalidConfigErrCode, err.Error())
	}
	return cfg, nil
}
