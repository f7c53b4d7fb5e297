package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/okatev/mailmirror/models"
)

// syncTokenKey is the sync_state row holding the folder sync token.
const syncTokenKey = "folders-state"

const accountTypeJMAP = "JMAP"

var folderColumns = []string{"server_id", "name", "role", "parent_server_id", "sort_order"}

func (db *DB) selectTokenQuery() sq.SelectBuilder {
	return db.builder().
		Select("value").
		From("sync_state").
		Where(sq.Eq{"key": syncTokenKey})
}

func (db *DB) insertTokenQuery(token string) sq.InsertBuilder {
	return db.builder().
		Insert("sync_state").
		Columns("key", "value").
		Values(syncTokenKey, token)
}

func (db *DB) updateTokenQuery(token string) sq.UpdateBuilder {
	return db.builder().
		Update("sync_state").
		Set("value", token).
		Where(sq.Eq{"key": syncTokenKey})
}

func (db *DB) insertAccountQuery(name string) sq.InsertBuilder {
	return db.builder().
		Insert("accounts").
		Columns("name", "type").
		Values(name, accountTypeJMAP)
}

func (db *DB) selectAccountNameQuery() sq.SelectBuilder {
	return db.builder().
		Select("name").
		From("accounts").
		Limit(1)
}

func (db *DB) insertFolderQuery(account string, box models.Mailbox) sq.InsertBuilder {
	return db.builder().
		Insert("folders").
		Columns(append([]string{"account_name"}, folderColumns...)...).
		Values(account, box.ServerID, box.Name, box.Role, box.ParentID, box.SortOrder)
}

func (db *DB) updateFolderQuery(box models.Mailbox) sq.UpdateBuilder {
	return db.builder().
		Update("folders").
		Set("name", box.Name).
		Set("role", box.Role).
		Set("parent_server_id", box.ParentID).
		Set("sort_order", box.SortOrder).
		Where(sq.Eq{"server_id": box.ServerID})
}

func (db *DB) deleteFolderQuery(serverID string) sq.DeleteBuilder {
	return db.builder().
		Delete("folders").
		Where(sq.Eq{"server_id": serverID})
}

func (db *DB) selectFoldersQuery() sq.SelectBuilder {
	return db.builder().
		Select(folderColumns...).
		From("folders")
}

func (db *DB) selectChildrenQuery(parentID *string) sq.SelectBuilder {
	q := db.selectFoldersQuery().OrderBy("sort_order", "name")
	if parentID == nil {
		return q.Where(sq.Eq{"parent_server_id": nil})
	}
	return q.Where(sq.Eq{"parent_server_id": *parentID})
}

func (db *DB) selectFolderQuery(serverID string) sq.SelectBuilder {
	return db.selectFoldersQuery().Where(sq.Eq{"server_id": serverID})
}

func (db *DB) selectParentsQuery() sq.SelectBuilder {
	return db.builder().
		Select("server_id", "parent_server_id").
		From("folders")
}
