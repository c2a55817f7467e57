// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	slot INTEGER NOT NULL,
	time INTEGER NOT NULL,
	txID BLOB(64) NOT NULL,
	eventIndex INTEGER NOT NULL,
	op TEXT NOT NULL,
	asset BLOB(32) NOT NULL,
	owner BLOB(32) NOT NULL,
	amount INTEGER NOT NULL,
	UNIQUE (txID, eventIndex)
);

CREATE INDEX IF NOT EXISTS eventI0 ON event(asset);
CREATE INDEX IF NOT EXISTS eventI1 ON event(owner);
CREATE INDEX IF NOT EXISTS eventI2 ON event(time);
`
