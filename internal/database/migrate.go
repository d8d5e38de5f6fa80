package database

import "database/sql"

// Migrate creates the schema if it does not exist yet. Statements are
// idempotent so the server can run them on every boot.
//
// subscriptions carries a UNIQUE KEY on store_id: a store has at most one
// subscription row and renewals mutate it in place. subscription_histories
// is append-only; end_date is NULL for failed payment attempts.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stores (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			store_name VARCHAR(100) NOT NULL,
			owner_name VARCHAR(100) NOT NULL,
			crn VARCHAR(20) NOT NULL,
			address VARCHAR(255) NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			withdrawn_at DATETIME NULL,
			UNIQUE KEY uq_stores_email (email),
			UNIQUE KEY uq_stores_crn (crn)
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			store_id BIGINT NOT NULL,
			name VARCHAR(100) NOT NULL,
			UNIQUE KEY uq_categories_store_name (store_id, name),
			CONSTRAINT fk_categories_store FOREIGN KEY (store_id) REFERENCES stores (id)
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			store_id BIGINT NOT NULL,
			category_id BIGINT NOT NULL,
			name VARCHAR(100) NOT NULL,
			description TEXT,
			price BIGINT NOT NULL,
			selling VARCHAR(20) NOT NULL DEFAULT 'STOP_SELLING',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			KEY idx_products_store (store_id),
			CONSTRAINT fk_products_store FOREIGN KEY (store_id) REFERENCES stores (id),
			CONSTRAINT fk_products_category FOREIGN KEY (category_id) REFERENCES categories (id)
		)`,
		`CREATE TABLE IF NOT EXISTS option_groups (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			product_id BIGINT NOT NULL,
			name VARCHAR(100) NOT NULL,
			CONSTRAINT fk_option_groups_product FOREIGN KEY (product_id) REFERENCES products (id)
		)`,
		`CREATE TABLE IF NOT EXISTS options (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			option_group_id BIGINT NOT NULL,
			name VARCHAR(100) NOT NULL,
			price BIGINT NOT NULL DEFAULT 0,
			CONSTRAINT fk_options_group FOREIGN KEY (option_group_id) REFERENCES option_groups (id)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			store_id BIGINT NOT NULL,
			status VARCHAR(20) NOT NULL,
			total_price BIGINT NOT NULL,
			ordered_at DATETIME NOT NULL,
			KEY idx_orders_store (store_id),
			CONSTRAINT fk_orders_store FOREIGN KEY (store_id) REFERENCES stores (id)
		)`,
		`CREATE TABLE IF NOT EXISTS order_products (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			order_id BIGINT NOT NULL,
			product_id BIGINT NOT NULL,
			quantity INT NOT NULL,
			unit_price BIGINT NOT NULL,
			CONSTRAINT fk_order_products_order FOREIGN KEY (order_id) REFERENCES orders (id),
			CONSTRAINT fk_order_products_product FOREIGN KEY (product_id) REFERENCES products (id)
		)`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			store_id BIGINT NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			period BIGINT NOT NULL,
			UNIQUE KEY uq_subscriptions_store (store_id),
			CONSTRAINT fk_subscriptions_store FOREIGN KEY (store_id) REFERENCES stores (id)
		)`,
		`CREATE TABLE IF NOT EXISTS subscription_histories (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			store_id BIGINT NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE NULL,
			amount BIGINT NOT NULL,
			paid BOOLEAN NOT NULL,
			created_at DATETIME NOT NULL,
			KEY idx_sub_histories_store (store_id),
			CONSTRAINT fk_sub_histories_store FOREIGN KEY (store_id) REFERENCES stores (id)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
