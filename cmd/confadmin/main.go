// cmd/confadmin/main.go
package main

import (
	"context"

	"github.com/dalemusser/waffle/app"
	"github.com/sciengasummits/confadmin/internal/app/bootstrap"
)

func main() {
	app.Run(context.Background(), bootstrap.Hooks)
}
