package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/websocket"

	"github.com/laurheth/pumpkin-oubliette/config"
	"github.com/laurheth/pumpkin-oubliette/handlers"
	"github.com/laurheth/pumpkin-oubliette/persistence"
	"github.com/laurheth/pumpkin-oubliette/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin during development
		// In production, restrict this to your client's domain
		return true
	},
}

func openStorage(cfg config.DatabaseConfig) (persistence.Storage, error) {
	switch cfg.Type {
	case config.StorePostgres:
		log.Println("Using PostgreSQL persistence")
		return persistence.NewPostgresStore(cfg.URL)
	case config.StoreBolt:
		log.Println("Using bbolt persistence")
		return persistence.NewBoltStore(cfg.File)
	default:
		log.Println("Using JSON persistence")
		return persistence.NewJSONStore(cfg.File)
	}
}

func main() {
	configPath := flag.String("config", os.Getenv("PUMPKIN_CONFIG"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := openStorage(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize persistence: %v", err)
	}
	defer db.Close()

	log.Println("Persistence initialized successfully")

	// Initialize services
	worldService := services.NewWorldService(cfg.World())
	playerService := services.NewPlayerService(worldService, db)
	clientManager := handlers.NewClientManager()
	sessions := handlers.NewSessionCodec([]byte(cfg.Session.HashKey))
	if cfg.Session.HashKey == "" {
		log.Println("SESSION_HASH_KEY not set, sessions will not survive a restart")
	}

	// Set up HTTP routes
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		session, created := sessions.GetOrCreate(r)
		header := http.Header{}
		if created {
			cookie, err := sessions.Cookie(session)
			if err != nil {
				log.Printf("Failed to create session: %v", err)
				http.Error(w, "session error", http.StatusInternalServerError)
				return
			}
			header.Add("Set-Cookie", cookie.String())
		}

		conn, err := upgrader.Upgrade(w, r, header)
		if err != nil {
			log.Printf("Failed to upgrade connection: %v", err)
			return
		}
		defer conn.Close()

		// Handle client connection
		handlers.HandleClientConnection(conn, session.ID, playerService, worldService, clientManager)
	})

	http.HandleFunc("/runs", func(w http.ResponseWriter, r *http.Request) {
		session, err := sessions.Get(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		levels, err := playerService.History(session.ID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, levels)
	})

	if cfg.Static != "" {
		http.Handle("/", http.FileServer(http.Dir(cfg.Static)))
	}

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, nil))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}
