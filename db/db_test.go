package db

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// fakeClient cliente real sin conexión abierta con Ping y Disconnect controlados.
type fakeClient struct {
	*mongo.Client
	pingErr     atomic.Value
	disconnects atomic.Int32
}

func newFakeClient(t *testing.T) *fakeClient {
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI("mongodb://127.0.0.1:1/?directConnection=true"))
	require.Nil(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.TODO()) })
	return &fakeClient{Client: client}
}

func (f *fakeClient) fail(err error) {
	f.pingErr.Store(err)
}

func (f *fakeClient) Ping(context.Context, *readpref.ReadPref) error {
	if err, ok := f.pingErr.Load().(error); ok {
		return err
	}
	return nil
}

func (f *fakeClient) Disconnect(context.Context) error {
	f.disconnects.Add(1)
	return nil
}

// fakeDialer entrega los clientes en orden; sin clientes devuelve error.
type fakeDialer struct {
	mu      sync.Mutex
	clients []*fakeClient
	dials   int
	delay   time.Duration
}

func (d *fakeDialer) dial(ctx context.Context, _ *options.ClientOptions) (mongoClient, error) {
	d.mu.Lock()
	d.dials++
	var next *fakeClient
	if len(d.clients) != 0 {
		next = d.clients[0]
		d.clients = d.clients[1:]
	}
	d.mu.Unlock()
	if d.delay > 0 {
		time.Sleep(d.delay)
	}
	if next == nil {
		return nil, errors.New("servidor no disponible")
	}
	return next, nil
}

func (d *fakeDialer) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dials
}

func testOptions() Options {
	return Options{
		URI:           "mongodb://localhost:27017",
		Database:      "Ofertas",
		CheckInterval: time.Nanosecond,
	}
}

func TestManager(t *testing.T) {
	t.Run(`options validation check`, func(t *testing.T) {
		_, err := NewManager(Options{Database: "Ofertas"})
		require.NotNil(t, err)

		_, err = NewManager(Options{URI: "mongodb://localhost:27017"})
		require.NotNil(t, err)

		m, err := NewManager(Options{URI: "mongodb://localhost:27017", Database: "Ofertas"})
		require.Nil(t, err)
		require.Equal(t, 10*time.Second, m.opts.ConnectTimeout)
		require.Equal(t, 2*time.Second, m.opts.PingTimeout)
	})

	t.Run(`close without connection check`, func(t *testing.T) {
		m, err := NewManager(Options{URI: "mongodb://localhost:27017", Database: "Ofertas"})
		require.Nil(t, err)
		require.Nil(t, m.Close(context.TODO()))
		require.Nil(t, m.Close(context.TODO()))
	})

	t.Run(`unreachable server check`, func(t *testing.T) {
		m, err := NewManager(Options{
			URI:            "mongodb://127.0.0.1:1/?directConnection=true",
			Database:       "Ofertas",
			ConnectTimeout: 300 * time.Millisecond,
			PingTimeout:    100 * time.Millisecond,
		})
		require.Nil(t, err)

		coll, err := m.Collection(context.TODO(), "Productos")
		require.NotNil(t, err)
		require.Nil(t, coll)
		require.Nil(t, m.client)

		require.NotNil(t, m.Ping(context.TODO()))

		// el siguiente uso vuelve a intentar
		_, err = m.Connect(context.TODO())
		require.NotNil(t, err)
		require.Nil(t, m.client)
	})

	t.Run(`stale client reconnects once check`, func(t *testing.T) {
		first, second := newFakeClient(t), newFakeClient(t)
		dialer := &fakeDialer{clients: []*fakeClient{first, second}}
		m, err := newManager(testOptions(), dialer.dial)
		require.Nil(t, err)

		_, err = m.Collection(context.TODO(), "Productos")
		require.Nil(t, err)
		require.Equal(t, 1, dialer.count())

		first.fail(errors.New("conexión perdida"))
		coll, err := m.Collection(context.TODO(), "Productos")
		require.Nil(t, err)
		require.NotNil(t, coll)
		require.Equal(t, 2, dialer.count())
		require.Equal(t, int32(1), first.disconnects.Load())
		require.Equal(t, mongoClient(second), m.client)
	})

	t.Run(`stale client with failed reconnect check`, func(t *testing.T) {
		first := newFakeClient(t)
		dialer := &fakeDialer{clients: []*fakeClient{first}}
		m, err := newManager(testOptions(), dialer.dial)
		require.Nil(t, err)
		require.Nil(t, m.Ping(context.TODO()))

		first.fail(errors.New("conexión perdida"))
		require.NotNil(t, m.Ping(context.TODO()))
		require.Equal(t, 2, dialer.count())
		require.Equal(t, int32(1), first.disconnects.Load())
		require.Nil(t, m.client)
		require.Nil(t, m.db)

		_, err = m.Collection(context.TODO(), "Productos")
		require.NotNil(t, err)
		require.Equal(t, 3, dialer.count())
	})

	t.Run(`healthy client is checked at most once per interval check`, func(t *testing.T) {
		first := newFakeClient(t)
		dialer := &fakeDialer{clients: []*fakeClient{first}}
		opts := testOptions()
		opts.CheckInterval = time.Hour
		m, err := newManager(opts, dialer.dial)
		require.Nil(t, err)

		_, err = m.Collection(context.TODO(), "Productos")
		require.Nil(t, err)
		first.fail(errors.New("conexión perdida"))
		_, err = m.Collection(context.TODO(), "Productos")
		require.Nil(t, err)
		require.Equal(t, 1, dialer.count())
		require.Equal(t, int32(0), first.disconnects.Load())
	})

	t.Run(`concurrent calls do not wait for each other check`, func(t *testing.T) {
		dialer := &fakeDialer{delay: 200 * time.Millisecond}
		m, err := newManager(testOptions(), dialer.dial)
		require.Nil(t, err)

		start := time.Now()
		errs := make(chan error, 5)
		wg := sync.WaitGroup{}
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := m.Collection(context.TODO(), "Productos")
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NotNil(t, err)
		}
		require.Equal(t, 5, dialer.count())
		require.Less(t, time.Since(start), 600*time.Millisecond)
	})
}
