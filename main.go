package main

import (
	"os"

	"github.com/0chain/s3mgrt/cmd"
	_ "github.com/golang/mock/mockgen/model"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
