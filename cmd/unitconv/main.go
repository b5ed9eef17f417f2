package main

import (
	"os"

	"github.com/yanqian/exchanger/internal/cli"
	"github.com/yanqian/exchanger/internal/domain/unitconv"
	"github.com/yanqian/exchanger/pkg/logger"
)

func main() {
	svc := unitconv.NewService(logger.NewTo(os.Stderr))
	if err := cli.NewRootCmd(svc).Execute(); err != nil {
		os.Exit(1)
	}
}
