// Package store defines the key-value collaborator quay persists into.
// Implementations live in the rediskv and memkv subpackages.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("key not found")

// KV is a durable mapping from string key to string value.
//
// PutMulti must apply all pairs atomically: a reader never observes some of
// the pairs written without the others. Delete of a missing key is not an
// error.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	PutMulti(ctx context.Context, pairs map[string]string) error
	Delete(ctx context.Context, key string) error
}

// Keys of the persisted state layout.
const (
	KeyAdminPassword = "admin_password"
	KeyAdminSession  = "admin_session"
	KeyCategories    = "categories"
	KeySites         = "sites"
	KeyDataBackup    = "data_backup"
)
