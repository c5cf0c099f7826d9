package db

import (
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config describes how to reach MySQL and how large the pool may grow.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string

	ConnectTimeout time.Duration // bound for every dial, including bootstrap pings
	MaxAttempts    int           // bootstrap attempts; 0 disables initialization

	MaxOpenConns    int
	MaxIdleConns    int
	QueueLimit      int // callers allowed to wait once MaxOpenConns are busy
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	QueryTimeout time.Duration // per call deadline, 0 means caller context only
}

// DSN returns the driver DSN for the application database.
func (c Config) DSN() string {
	return c.mysqlConfig(c.Database).FormatDSN()
}

// serverDSN targets the server without selecting a database, so the
// bootstrap ping works before the schema exists.
func (c Config) serverDSN() string {
	return c.mysqlConfig("").FormatDSN()
}

func (c Config) mysqlConfig(database string) *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	cfg.DBName = database
	cfg.Timeout = c.ConnectTimeout
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg
}

// capacity is the number of callers that may hold or wait for a connection.
// Zero means unbounded.
func (c Config) capacity() int64 {
	if c.MaxOpenConns <= 0 {
		return 0
	}
	queue := c.QueueLimit
	if queue < 0 {
		queue = 0
	}
	return int64(c.MaxOpenConns + queue)
}
