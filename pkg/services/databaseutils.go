package services

import (
	"context"

	"estatery-api-io/api/internal/apperr"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

type mongoTransactor struct {
	client *mongo.Client
}

// NewMongoTransactor runs callbacks in majority-acknowledged MongoDB transactions.
// The deployment must be a replica set.
func NewMongoTransactor(client *mongo.Client) Transactor {
	return &mongoTransactor{client: client}
}

func (t *mongoTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	wc := writeconcern.New(writeconcern.WMajority())
	txnOptions := options.Transaction().SetWriteConcern(wc).SetReadPreference(readpref.Primary())

	session, err := t.client.StartSession()
	if err != nil {
		return errors.Wrap(err, "start session")
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, fn(sessCtx)
	}, txnOptions)
	return err
}

// isNotFound reports whether err is a missing document error from the driver.
func isNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// asAppError keeps typed errors and marks everything else as upstream.
func asAppError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperr.Upstream(err)
}
