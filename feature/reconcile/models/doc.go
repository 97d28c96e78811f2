// Package models defines the persisted records of the reconcile feature.
package models
