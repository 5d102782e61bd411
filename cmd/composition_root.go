package cmd

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	httpadapter "shelf2door/internal/adapters/in/http"
	"shelf2door/internal/adapters/out/notify"
	"shelf2door/internal/adapters/out/postgres/orderarchive"
	"shelf2door/internal/adapters/out/postgres/shelfrepo"
	"shelf2door/internal/core/application/tracking"
	"shelf2door/internal/core/domain/model/agent"
	"shelf2door/internal/core/domain/model/customer"
	"shelf2door/internal/core/domain/model/kernel"
	"shelf2door/internal/core/geo"
	"shelf2door/internal/core/ports"
	"shelf2door/internal/core/registry"
	"shelf2door/internal/jobs"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CompositionRoot wires the application together: registries, the geo
// simulation, the order store, the tracking job and the HTTP server.
type CompositionRoot struct {
	Customers *registry.CustomerDirectory
	Agents    *registry.AgentRegistry
	Geo       *geo.Service
	Gateway   *notify.Gateway
	Store     *tracking.Store
	Tracker   *tracking.Tracker
	Jobs      *jobs.JobManager
	Server    *httpadapter.Server

	logger *slog.Logger
}

// NewCompositionRoot builds the object graph. gormDB may be nil, in which
// case archiving and the shelf stock endpoints are disabled.
func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	// Each concurrent consumer gets its own source: *rand.Rand is not safe
	// for unsynchronized sharing.
	seed := uint64(time.Now().UnixNano())

	customers := registry.NewCustomerDirectory()
	agents := registry.NewAgentRegistry()
	geoService := geo.NewService(rand.New(rand.NewPCG(seed, 1)))
	gateway := notify.NewGateway(rand.New(rand.NewPCG(seed, 2)), logger)

	var archive tracking.Archiver
	var shelves ports.ShelfStockRepository
	if gormDB != nil {
		archive = orderarchive.NewGormOrderArchive(gormDB)
		shelves = shelfrepo.NewGormShelfStockRepository(gormDB)
	}

	store := tracking.NewStore(customers, agents, geoService, gateway, archive,
		rand.New(rand.NewPCG(seed, 3)), logger)
	tracker := tracking.NewTracker(store, geoService,
		rand.New(rand.NewPCG(seed, 4)), logger)

	return &CompositionRoot{
		Customers: customers,
		Agents:    agents,
		Geo:       geoService,
		Gateway:   gateway,
		Store:     store,
		Tracker:   tracker,
		Jobs:      jobs.NewJobManager(tracker, logger),
		Server:    httpadapter.NewServer(store, agents, geoService, shelves),
		logger:    logger,
	}
}

// ConnectDB opens the PostgreSQL connection and migrates the archive schema.
func ConnectDB(config Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser,
		config.DBPassword, config.DBName, config.DBSslMode)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&orderarchive.OrderArchiveDTO{},
		&shelfrepo.ShelfStockDTO{},
	); err != nil {
		return nil, err
	}

	return db, nil
}

// SeedDemoData registers the demo customers and the delivery fleet, recording
// each agent's starting position.
func (c *CompositionRoot) SeedDemoData() error {
	demoCustomers := []struct {
		name     string
		phone    string
		address  string
		lat, lng float64
		channels []customer.Channel
	}{
		{"Alice Johnson", "+1-555-0101", "123 Main St, New York", 40.7128, -74.0060,
			[]customer.Channel{customer.ChannelSMS, customer.ChannelPush}},
		{"Bob Smith", "+1-555-0102", "456 Elm St, New York", 40.7306, -73.9866,
			[]customer.Channel{customer.ChannelWhatsApp}},
		{"Carol White", "+1-555-0103", "789 Oak Ave, New York", 40.7580, -73.9855,
			[]customer.Channel{customer.ChannelSMS}},
		{"David Lee", "+1-555-0104", "321 Pine Rd, New York", 40.6892, -74.0445,
			[]customer.Channel{customer.ChannelPush, customer.ChannelWhatsApp}},
		{"Emma Davis", "+1-555-0105", "654 Cedar Ln, New York", 40.7484, -73.9857,
			[]customer.Channel{customer.ChannelSMS, customer.ChannelWhatsApp, customer.ChannelPush}},
	}

	for _, d := range demoCustomers {
		location, err := kernel.NewGeoPoint(d.lat, d.lng)
		if err != nil {
			return err
		}
		cust, err := customer.NewCustomer(kernel.NewUUID(), d.name, d.phone, d.address, location, d.channels)
		if err != nil {
			return err
		}
		if err := c.Customers.Register(cust); err != nil {
			return err
		}
	}

	fleet := []struct {
		name     string
		phone    string
		vehicle  string
		lat, lng float64
	}{
		{"Mike Rodriguez", "+1-555-0201", "motorcycle", 40.7200, -74.0000},
		{"Sarah Chen", "+1-555-0202", "bicycle", 40.7500, -73.9800},
		{"James Kim", "+1-555-0203", "van", 40.7000, -74.0100},
	}

	for _, d := range fleet {
		a, err := agent.NewAgent(kernel.NewUUID(), d.name, d.phone, d.vehicle)
		if err != nil {
			return err
		}
		if err := c.Agents.Register(a); err != nil {
			return err
		}
		point, err := kernel.NewGeoPoint(d.lat, d.lng)
		if err != nil {
			return err
		}
		if _, err := c.Geo.RecordPosition(a.ID(), point); err != nil {
			return err
		}
	}

	c.logger.Info("demo data seeded",
		"customers", len(demoCustomers),
		"agents", len(fleet))
	return nil
}
