package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Api      Api      `json:"api" mapstructure:"api"`
	Log      Log      `json:"log" mapstructure:"log"`
	Database Database `json:"database" mapstructure:"database"`
	Redis    Redis    `json:"redis" mapstructure:"redis"`
	Jwt      Jwt      `json:"jwt" mapstructure:"jwt"`
	Chain    Chain    `json:"chain" mapstructure:"chain"`
}

type Api struct {
	Port string `json:"port" mapstructure:"port"`
}

type Log struct {
	Mode string `json:"mode" mapstructure:"mode"`
}

type Database struct {
	Dsn string `json:"dsn" mapstructure:"dsn"`
}

// Redis is optional; an empty addr disables leaderboard caching.
type Redis struct {
	Addr     string `json:"addr" mapstructure:"addr"`
	Password string `json:"password" mapstructure:"password"`
	DB       int    `json:"db" mapstructure:"db"`
}

type Jwt struct {
	Secret      string `json:"secret" mapstructure:"secret"`
	ExpireHours int    `json:"expire_hours" mapstructure:"expire_hours"`
}

// Chain is optional; an empty rpc_endpoint disables the on-chain boundary.
type Chain struct {
	RPCEndpoint      string `json:"rpc_endpoint" mapstructure:"rpc_endpoint"`
	FanClubsAddress  string `json:"fanclubs_address" mapstructure:"fanclubs_address"`
	ScoreUserAddress string `json:"scoreuser_address" mapstructure:"scoreuser_address"`
	PrivateKey       string `json:"private_key" mapstructure:"private_key"`
	ChainID          int64  `json:"chain_id" mapstructure:"chain_id"`
	GasPrice         int64  `json:"gas_price" mapstructure:"gas_price"`
}

func UnmarshalConfig(configFilePath string) (*Config, error) {
	viper.SetConfigFile(configFilePath)
	viper.SetConfigType("toml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "failed on read config file")
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "failed on unmarshal config")
	}

	if c.Jwt.ExpireHours <= 0 {
		c.Jwt.ExpireHours = 24
	}

	return &c, nil
}
