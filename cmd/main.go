package main

import (
	"context"
	"log"
	"time"

	"github.com/TherealJvJ/TelMoz-2.0/cmd/server"
	"github.com/TherealJvJ/TelMoz-2.0/internal/config"
	"github.com/TherealJvJ/TelMoz-2.0/internal/storage"
)

var (
	srvAddr          = config.Env.ServerAddr
	postgresConnStr  = config.Env.PostgresConnStr
	whatsAppNumber   = config.Env.WhatsAppNumber
	sessionTTLInSecs = config.Env.SessionTTLInSecs
)

func main() {
	log.SetFlags(log.Ldate | log.Llongfile)

	db, err := storage.NewPostgresDB(postgresConnStr)
	if err != nil {
		log.Fatal(err)
	}

	if err := storage.EnsureSchema(context.Background(), db); err != nil {
		log.Fatal(err)
	}

	srv := server.NewServer(&server.ServerConfig{
		Addr:           srvAddr,
		DB:             db,
		WhatsAppNumber: whatsAppNumber,
		SessionTTL:     (time.Duration(sessionTTLInSecs) * time.Second),
	},
	)
	srv.Run()
}
