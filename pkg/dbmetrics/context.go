package dbmetrics

import "context"

type txKey struct{}

// WithTx place la transaction active dans le contexte
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext retourne la transaction active s'il y en a une
func TxFromContext(ctx context.Context) (TxExecutor, bool) {
	tx, ok := ctx.Value(txKey{}).(TxExecutor)
	return tx, ok && tx != nil
}

// IsInTransaction ctx porte une transaction active
func IsInTransaction(ctx context.Context) bool {
	_, ok := TxFromContext(ctx)
	return ok
}

// GetExecutor retourne la transaction de ctx, sinon db.
// Les repositories l'appellent en tête de chaque méthode, le même code
// tourne ainsi dans et hors d'une transaction.
func GetExecutor(ctx context.Context, db DBExecutor) DBExecutor {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return db
}
