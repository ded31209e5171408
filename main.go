package main

import (
	"flag"
	_ "net/http/pprof"

	"github.com/Inteli-Club5/trbe-backend/api/router"
	"github.com/Inteli-Club5/trbe-backend/app"
	"github.com/Inteli-Club5/trbe-backend/config"
	"github.com/Inteli-Club5/trbe-backend/logger/xzap"
	"github.com/Inteli-Club5/trbe-backend/service/svc"
)

const defaultConfigPath = "./config/config.toml"

func main() {
	conf := flag.String("conf", defaultConfigPath, "conf file path")
	flag.Parse()
	c, err := config.UnmarshalConfig(*conf)
	if err != nil {
		panic(err)
	}

	if _, err := xzap.Init(c.Log.Mode); err != nil {
		panic(err)
	}
	defer xzap.Sync()

	serverCtx, err := svc.NewServiceContext(c)
	if err != nil {
		panic(err)
	}

	r := router.NewRouter(serverCtx)
	platform, err := app.NewPlatform(c, r, serverCtx)
	if err != nil {
		panic(err)
	}
	platform.Start()
}
