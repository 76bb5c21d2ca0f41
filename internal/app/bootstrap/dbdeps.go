// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/sciengasummits/confadmin/internal/app/system/mailer"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database and backend dependencies for this WAFFLE app.
//
// It is created in ConnectDB and passed to the subsequent lifecycle
// hooks: EnsureSchema, Startup, BuildHandler, and Shutdown. Shutdown is
// responsible for closing these connections gracefully.
type DBDeps struct {
	// MongoDB client and database
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// FileStorage for uploaded images (speaker photos, sponsor logos)
	FileStorage storage.Store

	// Mailer for sending login code emails
	Mailer *mailer.Mailer
}
