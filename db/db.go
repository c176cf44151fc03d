package db

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Options struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	PingTimeout    time.Duration
	// CheckInterval tiempo mínimo entre dos verificaciones de la conexión en Collection
	CheckInterval time.Duration
}

// mongoClient parte de *mongo.Client que usa el Manager.
type mongoClient interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
	Disconnect(ctx context.Context) error
	Database(name string, opts ...*options.DatabaseOptions) *mongo.Database
}

type dialFunc func(ctx context.Context, opts *options.ClientOptions) (mongoClient, error)

func dialMongo(ctx context.Context, opts *options.ClientOptions) (mongoClient, error) {
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Manager es dueño de la conexión a mongo. Se conecta en el primer uso
// y vuelve a conectar si el ping falla. El mutex solo protege el intercambio
// del cliente; los pings y las conexiones se hacen fuera del lock.
type Manager struct {
	opts Options
	dial dialFunc

	mu        sync.RWMutex
	client    mongoClient
	db        *mongo.Database
	checkedAt time.Time
}

func NewManager(opts Options) (*Manager, error) {
	return newManager(opts, dialMongo)
}

func newManager(opts Options, dial dialFunc) (*Manager, error) {
	if opts.URI == "" {
		return nil, errors.New("no se indicó la cadena de conexión a MongoDB")
	}
	if opts.Database == "" {
		return nil, errors.New("no se indicó el nombre de la base de datos")
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 10 * time.Second
	}
	if opts.PingTimeout <= 0 {
		opts.PingTimeout = 2 * time.Second
	}
	if opts.CheckInterval <= 0 {
		opts.CheckInterval = 5 * time.Second
	}
	return &Manager{opts: opts, dial: dial}, nil
}

// Connect establece la conexión o reutiliza la existente.
func (m *Manager) Connect(ctx context.Context) (*mongo.Database, error) {
	if _, database, _ := m.snapshot(); database != nil {
		return database, nil
	}
	return m.connect(ctx)
}

// Collection devuelve la colección indicada. Como mucho una vez por CheckInterval
// se hace ping al cliente actual; si no responde se descarta y se hace un único
// intento de reconexión.
func (m *Manager) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	client, database, checkedAt := m.snapshot()
	if client != nil && time.Since(checkedAt) >= m.opts.CheckInterval {
		if m.alive(ctx, client) {
			m.markChecked(client)
		} else {
			log.WithField("database", m.opts.Database).Warn("la conexión a MongoDB no responde, reconectando")
			m.drop(ctx, client)
			_, database, _ = m.snapshot()
		}
	}
	if database == nil {
		var err error
		if database, err = m.connect(ctx); err != nil {
			return nil, err
		}
	}
	return database.Collection(name), nil
}

// Ping comprueba la conexión existente y reconecta si no responde.
func (m *Manager) Ping(ctx context.Context) error {
	if client, _, _ := m.snapshot(); client != nil {
		if m.alive(ctx, client) {
			m.markChecked(client)
			return nil
		}
		log.WithField("database", m.opts.Database).Warn("la conexión a MongoDB no responde, reconectando")
		m.drop(ctx, client)
	}
	_, err := m.Connect(ctx)
	return err
}

func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	client := m.client
	m.client = nil
	m.db = nil
	m.mu.Unlock()
	if client == nil {
		return nil
	}
	if err := client.Disconnect(ctx); err != nil {
		return errors.Wrap(err, "error cerrando la conexión a MongoDB")
	}
	log.Info("conexión a MongoDB cerrada")
	return nil
}

func (m *Manager) snapshot() (mongoClient, *mongo.Database, time.Time) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.client, m.db, m.checkedAt
}

func (m *Manager) markChecked(client mongoClient) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == client {
		m.checkedAt = time.Now()
	}
}

// connect abre un cliente nuevo. Si otra llamada ya dejó uno instalado, se usa ese
// y el nuevo se cierra.
func (m *Manager) connect(ctx context.Context) (*mongo.Database, error) {
	client, err := m.open(ctx)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	if m.client != nil {
		current := m.db
		m.mu.Unlock()
		_ = client.Disconnect(context.Background())
		return current, nil
	}
	m.client = client
	m.db = client.Database(m.opts.Database)
	m.checkedAt = time.Now()
	database := m.db
	m.mu.Unlock()
	log.WithField("database", m.opts.Database).Info("conectado a MongoDB")
	return database, nil
}

func (m *Manager) open(ctx context.Context) (mongoClient, error) {
	logger := log.WithField("database", m.opts.Database)
	clientOpts := options.Client().
		ApplyURI(m.opts.URI).
		SetConnectTimeout(m.opts.ConnectTimeout).
		SetServerSelectionTimeout(m.opts.ConnectTimeout)
	client, err := m.dial(ctx, clientOpts)
	if err != nil {
		logger.WithError(err).Error("error conectando a MongoDB")
		return nil, errors.Wrap(err, "error conectando a MongoDB")
	}
	pingCtx, cancel := context.WithTimeout(ctx, m.opts.ConnectTimeout)
	defer cancel()
	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.WithError(err).Error("error conectando a MongoDB")
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "error conectando a MongoDB")
	}
	return client, nil
}

func (m *Manager) alive(ctx context.Context, client mongoClient) bool {
	pingCtx, cancel := context.WithTimeout(ctx, m.opts.PingTimeout)
	defer cancel()
	return client.Ping(pingCtx, readpref.Primary()) == nil
}

// drop quita el cliente caído si sigue instalado y lo desconecta.
func (m *Manager) drop(ctx context.Context, client mongoClient) {
	m.mu.Lock()
	if m.client != client {
		m.mu.Unlock()
		return
	}
	m.client = nil
	m.db = nil
	m.mu.Unlock()
	if err := client.Disconnect(ctx); err != nil {
		log.WithError(err).Warn("error cerrando la conexión caída a MongoDB")
	}
}
