// Command migrate aplica las migraciones embebidas contra DATABASE_URL / DB_*.
//
//	migrate          aplica las pendientes
//	migrate status   muestra el estado
package main

import (
	"os"

	"github.com/jhoicas/stockpro-api/migrations"
	"github.com/jhoicas/stockpro-api/pkg/config"
	"github.com/jhoicas/stockpro-api/pkg/logger"
	"github.com/jhoicas/stockpro-api/pkg/migrator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	dsn := cfg.DB.ConnectionString()
	switch cmd {
	case "up":
		if err := migrator.RunMigrations(dsn, migrations.FS); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	case "status":
		if err := migrator.Status(dsn, migrations.FS); err != nil {
			log.Fatal().Err(err).Msg("estado de migraciones")
		}
	default:
		log.Fatal().Str("cmd", cmd).Msg("comando desconocido (up|status)")
	}
}
