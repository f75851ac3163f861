/*
 * Copyright 2026 The Notebox Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package mongo implements the database interface using MongoDB.
package mongo

import (
	"context"
	"fmt"
	gotime "time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/notebox-team/notebox/api/types"
	"github.com/notebox-team/notebox/pkg/draft/key"
	"github.com/notebox-team/notebox/server/backend/database"
	"github.com/notebox-team/notebox/server/logging"
)

// Client is a client that connects to MongoDB and reads or saves Notebox
// drafts and presences.
type Client struct {
	config *Config
	client *mongo.Client
}

// Dial creates an instance of Client and dials the given MongoDB.
func Dial(conf *Config) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), conf.ParseConnectionTimeout())
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.ConnectionURI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	ctxPing, cancel := context.WithTimeout(ctx, conf.ParsePingTimeout())
	defer cancel()

	if err := client.Ping(ctxPing, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	if err := ensureIndexes(ctx, client.Database(conf.NoteboxDatabase)); err != nil {
		return nil, err
	}

	logging.DefaultLogger().Infof("connected to mongo: %s", conf.ConnectionURI)

	return &Client{
		config: conf,
		client: client,
	}, nil
}

// Close all resources of this client.
func (c *Client) Close() error {
	if err := c.client.Disconnect(context.Background()); err != nil {
		return fmt.Errorf("disconnect from mongo: %w", err)
	}

	return nil
}

// UpsertDraft stores the given payload as the current version of the key.
func (c *Client) UpsertDraft(
	ctx context.Context,
	k key.Key,
	writerID string,
	payload types.DraftPayload,
) (*database.DraftInfo, error) {
	info := &database.DraftInfo{
		Key:       k.Combined(),
		WriterID:  writerID,
		Payload:   payload.DeepCopy(),
		UpdatedAt: gotime.Now(),
	}

	if _, err := c.collection(colDrafts).ReplaceOne(
		ctx,
		bson.M{"key": info.Key},
		info,
		options.Replace().SetUpsert(true),
	); err != nil {
		return nil, fmt.Errorf("upsert draft %s: %w", k, err)
	}

	return info.DeepCopy(), nil
}

// FindDraft returns the current version of the given key.
func (c *Client) FindDraft(ctx context.Context, k key.Key) (*database.DraftInfo, error) {
	result := c.collection(colDrafts).FindOne(ctx, bson.M{"key": k.Combined()})
	if result.Err() == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%s: %w", k, database.ErrDraftNotFound)
	}
	if result.Err() != nil {
		return nil, fmt.Errorf("find draft %s: %w", k, result.Err())
	}

	info := &database.DraftInfo{}
	if err := result.Decode(info); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", k, err)
	}

	return info, nil
}

// UpsertPresence stores a presence record for the (key, editor) pair.
func (c *Client) UpsertPresence(
	ctx context.Context,
	k key.Key,
	editorID string,
	displayName string,
	lastActiveAt gotime.Time,
) (*database.PresenceInfo, error) {
	info := &database.PresenceInfo{
		Key:          k.Combined(),
		EditorID:     editorID,
		DisplayName:  displayName,
		LastActiveAt: lastActiveAt,
	}

	if _, err := c.collection(colPresences).ReplaceOne(
		ctx,
		bson.M{"key": info.Key, "editor_id": editorID},
		info,
		options.Replace().SetUpsert(true),
	); err != nil {
		return nil, fmt.Errorf("upsert presence %s/%s: %w", k, editorID, err)
	}

	return info.DeepCopy(), nil
}

// FindPresences returns all presence records of the given key.
func (c *Client) FindPresences(ctx context.Context, k key.Key) ([]*database.PresenceInfo, error) {
	cursor, err := c.collection(colPresences).Find(
		ctx,
		bson.M{"key": k.Combined()},
		options.Find().SetSort(bson.M{"editor_id": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("find presences %s: %w", k, err)
	}

	var infos []*database.PresenceInfo
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, fmt.Errorf("decode presences %s: %w", k, err)
	}

	return infos, nil
}

// DeletePresence removes the presence record of the (key, editor) pair.
func (c *Client) DeletePresence(ctx context.Context, k key.Key, editorID string) error {
	if _, err := c.collection(colPresences).DeleteOne(
		ctx,
		bson.M{"key": k.Combined(), "editor_id": editorID},
	); err != nil {
		return fmt.Errorf("delete presence %s/%s: %w", k, editorID, err)
	}

	return nil
}

// PurgeStalePresences removes all presence records last active before the
// given time.
func (c *Client) PurgeStalePresences(ctx context.Context, before gotime.Time) (int, error) {
	result, err := c.collection(colPresences).DeleteMany(
		ctx,
		bson.M{"last_active_at": bson.M{"$lt": before}},
	)
	if err != nil {
		return 0, fmt.Errorf("purge stale presences: %w", err)
	}

	return int(result.DeletedCount), nil
}

func (c *Client) collection(name string) *mongo.Collection {
	return c.client.Database(c.config.NoteboxDatabase).Collection(name)
}
