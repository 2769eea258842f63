// Package models defines the core domain models for Settle.
//
// Users are identified by their email address: Group membership, expense
// splits and payments all reference members by value (the normalized email
// string), never by object reference. Only a Group's creator is stored as an
// opaque user ID.
//
// Expense and Payment are write-once: they are created atomically and never
// mutated, which is what lets the ledger fold over them without locking.
package models
