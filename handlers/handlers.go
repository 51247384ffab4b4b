package handlers

import (
	"mrparker/archive"
	"mrparker/followup"
	"mrparker/service"
	"mrparker/session"
)

// @title           Mr Parker Query Assistant API
// @version         1.0
// @description     Natural-language query assistant for a parking-management dataset - translates questions to SQL, executes them, and phrases the results back into prose

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:9090
// @BasePath  /

// @schemes   http https

type Handlers struct {
	pipeline  *service.Pipeline
	store     *session.Store
	followups *followup.Generator
	archive   *archive.Archive
}

func New(pipeline *service.Pipeline, store *session.Store, followups *followup.Generator, archive *archive.Archive) *Handlers {
	return &Handlers{
		pipeline:  pipeline,
		store:     store,
		followups: followups,
		archive:   archive,
	}
}
