// Command main generates the VAPID key pair file used for web push.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"fable/internal/push"
)

func main() {
	out := flag.String("out", "data/vapid.json", "Path to write the key pair to")
	force := flag.Bool("force", false, "Overwrite an existing key file")
	flag.Parse()

	if _, err := os.Stat(*out); err == nil && !*force {
		log.Fatalf("%s already exists; pass -force to overwrite", *out)
	}

	keys, err := push.GenerateVAPIDKeys()
	if err != nil {
		log.Fatalf("Key generation failed: %v", err)
	}

	data, err := json.MarshalIndent(keys, "", "  ")
	if err != nil {
		log.Fatalf("Encoding failed: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatalf("Could not create output directory: %v", err)
	}
	if err := os.WriteFile(*out, data, 0o600); err != nil {
		log.Fatalf("Could not write key file: %v", err)
	}

	log.Printf("Wrote VAPID key pair to %s", *out)
	log.Printf("Public key: %s", keys.PublicKey)
}
