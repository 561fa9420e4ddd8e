// internal/model/customer.go
package model

import "time"

// Customer is a row of the customers table. Rows are owned by an external
// process; this module only reads them.
type Customer struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Age       int       `db:"age" json:"age"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
