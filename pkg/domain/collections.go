package domain

// Collection names one independently read and written bucket of records.
type Collection string

// The five logical collections held by the record store.
const (
	CollectionPatients       Collection = "PATIENTS"
	CollectionStaff          Collection = "STAFF"
	CollectionDepartments    Collection = "DEPARTMENTS"
	CollectionUsers          Collection = "USERS"
	CollectionCurrentSession Collection = "CURRENT_SESSION"
)

// Collections returns every collection in a stable order.
func Collections() []Collection {
	return []Collection{
		CollectionPatients,
		CollectionStaff,
		CollectionDepartments,
		CollectionUsers,
		CollectionCurrentSession,
	}
}
