package conf

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nunet/go-nunet/constants"
)

var config *ClientConfig

// ClientConfig is the go-nunet client config
type ClientConfig struct {
	DMS    DMS
	LEDGER LEDGER
}

type DMS struct {
	Host   string
	UseTLS bool
}

type LEDGER struct {
	Network       string
	ScriptAddress string
}

func InitConfig(repoPath string) error {
	configFile := filepath.Join(repoPath, "config.toml")

	if metaData, err := toml.DecodeFile(configFile, &config); err != nil {
		return fmt.Errorf("failed load config file, path: %s, error: %w", configFile, err)
	} else {
		if !requiredFieldsAreGiven(metaData) {
			log.Fatal("Required fields not given")
		}
	}

	if config.LEDGER.ScriptAddress == "" {
		config.LEDGER.ScriptAddress = constants.ScriptAddress
	}
	return nil
}

func GetConfig() *ClientConfig {
	return config
}

func requiredFieldsAreGiven(metaData toml.MetaData) bool {
	requiredFields := [][]string{
		{"DMS"},
		{"LEDGER"},

		{"DMS", "Host"},

		{"LEDGER", "Network"},
	}

	for _, v := range requiredFields {
		if !metaData.IsDefined(v...) {
			log.Fatal("Required fields ", v)
		}
	}

	return true
}
