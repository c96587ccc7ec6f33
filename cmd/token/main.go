// Command token emite un Bearer token firmado con JWT_SECRET para integraciones
// (lector de códigos, scripts de bodega) que no pasan por el login.
//
//	go run ./cmd/token -user bodega-scanner -role bodeguero -minutes 1440
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/pkg/config"
	"github.com/jhoicas/taller-api/pkg/jwt"
	"github.com/jhoicas/taller-api/pkg/logger"
)

func main() {
	userID := flag.String("user", "", "ID del usuario o integración (obligatorio)")
	role := flag.String("role", entity.RoleBodeguero, "rol: admin, bodeguero, tecnico o cajero")
	minutes := flag.Int("minutes", 0, "vigencia en minutos (0 = JWT_EXPIRATION)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	// logs a stderr: stdout lleva solo el token
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "token", Output: os.Stderr})

	if *userID == "" || !entity.IsValidRole(*role) {
		flag.Usage()
		os.Exit(2)
	}
	exp := *minutes
	if exp <= 0 {
		exp = cfg.JWT.Expiration
	}

	token, err := jwt.Generate(cfg.JWT.Secret, *userID, *role, cfg.JWT.Issuer, exp)
	if err != nil {
		log.Fatal().Err(err).Msg("firmar token")
	}
	log.Info().Str("user_id", *userID).Str("role", *role).Int("minutes", exp).Msg("token emitido")
	fmt.Println(token)
}
