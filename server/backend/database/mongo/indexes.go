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

package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	colDrafts    = "drafts"
	colPresences = "presences"
)

type collectionInfo struct {
	name    string
	indexes []mongo.IndexModel
}

// collectionInfos holds the unique indexes that guarantee one draft row per
// key and one presence row per (key, editor) pair.
var collectionInfos = []collectionInfo{
	{
		name: colDrafts,
		indexes: []mongo.IndexModel{{
			Keys:    bson.D{{Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
	},
	{
		name: colPresences,
		indexes: []mongo.IndexModel{{
			Keys: bson.D{
				{Key: "key", Value: 1},
				{Key: "editor_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		}, {
			Keys: bson.D{{Key: "last_active_at", Value: 1}},
		}},
	},
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, info := range collectionInfos {
		if _, err := db.Collection(info.name).Indexes().CreateMany(ctx, info.indexes); err != nil {
			return fmt.Errorf("create indexes of %s: %w", info.name, err)
		}
	}

	return nil
}
