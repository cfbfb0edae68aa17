// Package action owns the remote action value and its wire contract.
//
// An Action bundles an icon, a title, a content description and a callback.
// It is written as the four collaborator encodings back to back, in exactly
// that order, with no outer length or version. Each collaborator delimits
// itself, so readers consume the record sequentially.
//
// The record carries no version tag. Reordering or adding fields breaks
// every reader of previously encoded data.
package action
