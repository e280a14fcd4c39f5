package utils

import (
	"database/sql"
	"net/url"

	"netstatus-bar/internal/config"

	_ "github.com/lib/pq"
)

// OpenPostgres 只打开连接池，不做 Ping；单次运行最多使用一个连接
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return db, nil
}

func BuildPostgresDSN(c config.Postgres) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   c.Host + ":" + c.Port,
		Path:   "/" + c.DB,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else {
		u.User = url.User(c.User)
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	q.Set("connect_timeout", "3")
	u.RawQuery = q.Encode()
	return u.String()
}
