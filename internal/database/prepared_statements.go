package database

import (
	"time"

	"github.com/gocql/gocql"
)

// Requêtes chaudes du portail retours. gocql prépare chaque statement à sa
// première exécution et le met en cache par session ; on construit une
// gocql.Query par appel car Bind mute la query en place (une query partagée
// entre goroutines ferait se croiser les valeurs de deux requêtes HTTP).
const (
	cqlGetUserByEmail = `SELECT user_id FROM users_by_email WHERE email = ?`

	cqlInsertUser = `INSERT INTO users (user_id, email, password, name, role, provider, provider_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	cqlInsertUserByEmail = `INSERT INTO users_by_email (email, user_id) VALUES (?, ?)`

	cqlGetReturnByID = `SELECT return_id, order_id, user_id, items, reason, type, notes, status, resolution_note, photo_urls, refund_amount, stripe_refund_id, created_at, updated_at
		FROM returns WHERE return_id = ?`

	cqlGetReturnsByUser = `SELECT return_id, order_id, items, reason, type, notes, status, resolution_note, photo_urls, refund_amount, stripe_refund_id, created_at, updated_at
		FROM returns_by_user WHERE user_id = ?`

	cqlInsertReturn = `INSERT INTO returns (return_id, order_id, user_id, items, reason, type, notes, status, refund_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	cqlInsertReturnByUser = `INSERT INTO returns_by_user (user_id, return_id, order_id, items, reason, type, notes, status, refund_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

func QueryGetUserByEmail(email string) (*gocql.Query, error) {
	session, err := GetUsersSession()
	if err != nil {
		return nil, err
	}
	return session.Query(cqlGetUserByEmail, email), nil
}

func QueryInsertUser(userID gocql.UUID, email, password, name, role, provider, providerID string, createdAt, updatedAt time.Time) (*gocql.Query, error) {
	session, err := GetUsersSession()
	if err != nil {
		return nil, err
	}
	return session.Query(cqlInsertUser, userID, email, password, name, role, provider, providerID, createdAt, updatedAt), nil
}

func QueryInsertUserByEmail(email string, userID gocql.UUID) (*gocql.Query, error) {
	session, err := GetUsersSession()
	if err != nil {
		return nil, err
	}
	return session.Query(cqlInsertUserByEmail, email, userID), nil
}

func QueryGetReturnByID(returnID gocql.UUID) (*gocql.Query, error) {
	session, err := GetOrdersSession()
	if err != nil {
		return nil, err
	}
	return session.Query(cqlGetReturnByID, returnID), nil
}

func QueryGetReturnsByUser(userID string) (*gocql.Query, error) {
	session, err := GetOrdersSession()
	if err != nil {
		return nil, err
	}
	return session.Query(cqlGetReturnsByUser, userID), nil
}

func QueryInsertReturn(returnID gocql.UUID, orderID gocql.UUID, userID, items, reason, reqType, notes, status string, refundAmount float64, createdAt time.Time) (*gocql.Query, error) {
	session, err := GetOrdersSession()
	if err != nil {
		return nil, err
	}
	return session.Query(cqlInsertReturn, returnID, orderID, userID, items, reason, reqType, notes, status, refundAmount, createdAt), nil
}

func QueryInsertReturnByUser(userID string, returnID gocql.UUID, orderID gocql.UUID, items, reason, reqType, notes, status string, refundAmount float64, createdAt time.Time) (*gocql.Query, error) {
	session, err := GetOrdersSession()
	if err != nil {
		return nil, err
	}
	return session.Query(cqlInsertReturnByUser, userID, returnID, orderID, items, reason, reqType, notes, status, refundAmount, createdAt), nil
}
