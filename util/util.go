package util

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
)

// GetConfigDir get config directory , default is ~/.s3mgrt/
func GetConfigDir() string {

	configDir := GetHomeDir() + string(os.PathSeparator) + ".s3mgrt"

	if err := os.MkdirAll(configDir, 0744); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	return configDir
}

// GetHomeDir Find home directory.
func GetHomeDir() string {
	// Find home directory.
	idr, err := homedir.Dir()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	return idr
}

// ExpandPath resolves a leading ~ in p.
func ExpandPath(p string) (string, error) {
	return homedir.Expand(p)
}
