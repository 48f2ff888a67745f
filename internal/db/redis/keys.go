package redis

import (
	"strconv"

	"github.com/kailas-cloud/recdex/internal/db"
)

// keyspace names the sets holding record ids.
//
//	{prefix}user:{id}:records   records explicitly readable by a user
//	{prefix}public              records readable by everyone
//	{prefix}tag:{tag}
//	{prefix}collection:{id}
//	{prefix}type:{type}
//	{prefix}mimetype:{mimetype}
//	{prefix}record:{id}         JSON of the last stored db.RecordRow
type keyspace struct {
	prefix string
}

func (k keyspace) user(id int64) string {
	return k.prefix + "user:" + strconv.FormatInt(id, 10) + ":records"
}

func (k keyspace) public() string { return k.prefix + "public" }

func (k keyspace) tag(t string) string { return k.prefix + "tag:" + t }

func (k keyspace) collection(id int64) string {
	return k.prefix + "collection:" + strconv.FormatInt(id, 10)
}

func (k keyspace) recordType(t string) string { return k.prefix + "type:" + t }

func (k keyspace) mimetype(m string) string { return k.prefix + "mimetype:" + m }

func (k keyspace) record(id int64) string {
	return k.prefix + "record:" + strconv.FormatInt(id, 10)
}

// memberships lists every set the record id belongs to.
func (k keyspace) memberships(row *db.RecordRow) []string {
	var keys []string
	for _, uid := range row.Readers {
		keys = append(keys, k.user(uid))
	}
	if row.Public() {
		keys = append(keys, k.public())
	}
	for _, t := range row.Tags {
		keys = append(keys, k.tag(t))
	}
	for _, cid := range row.Collections {
		keys = append(keys, k.collection(cid))
	}
	if row.Type != "" {
		keys = append(keys, k.recordType(row.Type))
	}
	for _, m := range row.Mimetypes {
		keys = append(keys, k.mimetype(m))
	}
	return keys
}
