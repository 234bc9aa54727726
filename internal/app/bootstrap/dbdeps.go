package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/hallbook/internal/app/scheduler"
	"github.com/dalemusser/hallbook/internal/app/store/persist"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Persist is the Mongo-backed durability layer for the scheduler.
	Persist *persist.Store

	// Core is the in-memory scheduler, hydrated from Mongo during Startup.
	Core *scheduler.Core
}
