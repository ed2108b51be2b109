package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and applies the
// idempotent schema DDL. The schema is managed here via plain SQL instead of
// AutoMigrate: the generated subtotal column and the CHECK constraints on
// detalle_factura are DDL that GORM cannot express precisely.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := applySchema(db); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	return db, nil
}

// applySchema creates the four tables when missing. Every statement uses
// IF NOT EXISTS semantics so re-running on an existing database is a no-op.
//
// detalle_factura.subtotal is GENERATED ALWAYS AS (precio * cantidad): the
// store, not the application, maintains the line subtotal invariant, and the
// header total is recomputed from SUM(subtotal) inside the creation
// transaction.
func applySchema(db *gorm.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS clientes (
			id_cliente SERIAL PRIMARY KEY,
			nombre     TEXT NOT NULL,
			documento  TEXT NOT NULL,
			direccion  TEXT,
			telefono   TEXT,
			correo     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_clientes_nombre ON clientes (nombre)`,

		`CREATE TABLE IF NOT EXISTS productos (
			id_producto SERIAL PRIMARY KEY,
			nombre      TEXT NOT NULL,
			descripcion TEXT,
			precio      NUMERIC(12,2) NOT NULL CHECK (precio >= 0),
			stock       INT NOT NULL DEFAULT 0 CHECK (stock >= 0)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_productos_nombre ON productos (nombre)`,

		`CREATE TABLE IF NOT EXISTS facturas (
			id_factura SERIAL PRIMARY KEY,
			id_cliente INT NOT NULL REFERENCES clientes (id_cliente),
			fecha      DATE NOT NULL DEFAULT CURRENT_DATE,
			total      NUMERIC(14,2) NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_facturas_cliente ON facturas (id_cliente)`,
		`CREATE INDEX IF NOT EXISTS idx_facturas_fecha ON facturas (fecha DESC)`,

		`CREATE TABLE IF NOT EXISTS detalle_factura (
			id_detalle  SERIAL PRIMARY KEY,
			id_factura  INT NOT NULL REFERENCES facturas (id_factura) ON DELETE CASCADE,
			id_producto INT NOT NULL REFERENCES productos (id_producto),
			cantidad    INT NOT NULL CHECK (cantidad > 0),
			precio      NUMERIC(12,2) NOT NULL CHECK (precio >= 0),
			subtotal    NUMERIC(14,2) GENERATED ALWAYS AS (precio * cantidad) STORED
		)`,
		`CREATE INDEX IF NOT EXISTS idx_detalle_factura ON detalle_factura (id_factura)`,
	}

	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("ddl %q: %w", stmt[:min(len(stmt), 50)], err)
		}
	}
	return nil
}
