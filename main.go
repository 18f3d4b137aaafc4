package main

import (
	"github.com/tanpawarit/catalog-agent/app/cli"
	_ "github.com/tanpawarit/catalog-agent/pkg/logger/autoload"
)

func main() {
	cli.Execute()
}
