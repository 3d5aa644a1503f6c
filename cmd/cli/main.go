package main

import (
	"context"
	"log"
	"os"

	"github.com/okarpov/studykeeper/internal/app"
	"github.com/okarpov/studykeeper/internal/buildinfo"
	"github.com/okarpov/studykeeper/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	a, err := app.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	a.Run(ctx)

}
