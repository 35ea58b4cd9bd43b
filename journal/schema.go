package journal

const Schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	kind TEXT NOT NULL CHECK (kind IN ('BUY', 'SELL')),
	quantity INTEGER NOT NULL CHECK (quantity > 0),
	unit_price TEXT NOT NULL,
	amount TEXT NOT NULL,
	cash_after TEXT NOT NULL,
	time DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_time ON transactions(time);
CREATE INDEX IF NOT EXISTS idx_transactions_symbol ON transactions(symbol);
`
