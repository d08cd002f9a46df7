package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ssc-spc/bitsmcp/internal/brquery"
	"github.com/ssc-spc/bitsmcp/internal/brquery/configuration"
	"github.com/ssc-spc/bitsmcp/internal/common"
	"github.com/ssc-spc/bitsmcp/internal/common/app"
)

const CustomConfigLocation string = "config"

func init() {
	pflag.StringSlice(
		CustomConfigLocation,
		[]string{},
		"Fully qualified path to application configuration file (for multiple config files repeat this arg or separate paths with commas)",
	)
	pflag.Parse()
}

func main() {
	common.ConfigureLogging()
	common.BindCommandlineArguments()

	var config configuration.BRQueryConfiguration
	userSpecifiedConfigs := viper.GetStringSlice(CustomConfigLocation)
	common.LoadConfig(&config, "./config/bitsmcp", userSpecifiedConfigs)

	log.Info("Starting...")

	ctx := app.CreateContextWithShutdown()

	shutdown, wg, err := brquery.StartUp(ctx, config)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
	go func() {
		<-ctx.Done()
		shutdown()
	}()
	wg.Wait()
}
