// dailishawctl herramientas de operación: migraciones y alta del primer administrador.
//
// Uso:
//
//	dailishawctl migrate
//	dailishawctl seed-admin --email admin@example.com --password secreto [--reset]
package main

import (
	"os"

	"github.com/dailishaw/dailishaw-api/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
