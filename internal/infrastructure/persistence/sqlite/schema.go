package sqlite

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		customer_id INTEGER PRIMARY KEY,
		first_name  TEXT NOT NULL,
		last_name   TEXT NOT NULL,
		email       TEXT UNIQUE,
		signup_date DATE,
		city        TEXT,
		country     TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		product_id   INTEGER PRIMARY KEY,
		product_name TEXT NOT NULL,
		category     TEXT,
		price        DECIMAL(10,2),
		cost         DECIMAL(10,2)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id    INTEGER PRIMARY KEY,
		customer_id INTEGER,
		order_date  DATE,
		status      TEXT,
		FOREIGN KEY (customer_id) REFERENCES customers(customer_id)
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_item_id INTEGER PRIMARY KEY,
		order_id      INTEGER,
		product_id    INTEGER,
		quantity      INTEGER,
		unit_price    DECIMAL(10,2),
		FOREIGN KEY (order_id) REFERENCES orders(order_id),
		FOREIGN KEY (product_id) REFERENCES products(product_id)
	)`,
}

// Tables in dependency order.
var Tables = []string{"customers", "products", "orders", "order_items"}
