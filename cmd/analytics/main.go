package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/Inventario-epi/pkg/config"
	"github.com/jhoicas/Inventario-epi/pkg/logger"
)

func main() {
	// .env opcional; las variables del entorno tienen prioridad
	_ = godotenv.Load(".env")

	app := &cli.App{
		Name:  "epi-analytics",
		Usage: "Análisis de consumo y riesgo de EPI fuera del servidor HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Nivel de log (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "report",
				Usage: "Genera el reporte a partir de archivos JSON de salidas y stock",
				Flags: append(commonReportFlags(),
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Archivo JSON con el arreglo de salidas (\"-\" = stdin)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "stock",
						Usage: "Archivo JSON con el stock actual por material (opcional)",
					},
					&cli.IntFlag{
						Name:  "days",
						Usage: "Días del período; 0 = rango de fechas de las salidas",
					},
				),
				Action: runReport,
			},
			{
				Name:  "db-report",
				Usage: "Genera el reporte de una empresa leyendo PostgreSQL",
				Flags: append(commonReportFlags(),
					&cli.StringFlag{
						Name:    "db-url",
						Usage:   "Connection string de PostgreSQL",
						EnvVars: []string{"DATABASE_URL"},
					},
					&cli.StringFlag{
						Name:     "company",
						Usage:    "ID de la empresa",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "start",
						Usage: "Inicio del período (YYYY-MM-DD)",
					},
					&cli.StringFlag{
						Name:  "end",
						Usage: "Fin del período (YYYY-MM-DD)",
					},
				),
				Action: runDBReport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func commonReportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "term",
			Usage: "Filtro de texto de los rankings",
		},
		&cli.IntFlag{
			Name:  "top",
			Usage: "Máx. filas por ranking",
			Value: 10,
		},
		&cli.Float64Flag{
			Name:  "limit-a",
			Usage: "Corte de la clase A en % acumulado (0 = configuración)",
		},
		&cli.Float64Flag{
			Name:  "limit-b",
			Usage: "Corte de la clase B en % acumulado (0 = configuración)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Archivo de salida del JSON (vacío = stdout)",
		},
		&cli.StringFlag{
			Name:  "pdf",
			Usage: "Si se indica, escribe también el PDF de riesgo en esta ruta",
		},
	}
}

// loadConfig lee la configuración (env / .env) y aplica los cortes de la línea de comandos.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if a := c.Float64("limit-a"); a > 0 {
		cfg.Analytics.LimitA = a
	}
	if b := c.Float64("limit-b"); b > 0 {
		cfg.Analytics.LimitB = b
	}
	if cfg.Analytics.LimitA > cfg.Analytics.LimitB {
		return nil, fmt.Errorf("limit-a (%.2f) mayor que limit-b (%.2f)", cfg.Analytics.LimitA, cfg.Analytics.LimitB)
	}
	return cfg, nil
}

// newLogger escribe en stderr para no mezclar los logs con el JSON.
func newLogger(c *cli.Context, env string) *logger.Logger {
	return logger.New(logger.Config{
		Env:   env,
		Level: c.String("log-level"),
		Out:   os.Stderr,
	})
}
