// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transform derives a display title for a conversation record and
// clears its free-text notes.
package transform

import (
	"strings"

	"github.com/pdiddy/conversation-retitle/pkg/types"
)

// compoundSep joins labels in compound values such as
// "Obligation + Guilt + Anxiety".
const compoundSep = "+"

// titleSep separates the title segments. Hyphens already present in the
// inputs are not escaped.
const titleSep = "-"

// ExtractFirstWord returns the leading word of text. For compound labels the
// leading word of the first label is returned. Empty or whitespace-only text
// yields "".
func ExtractFirstWord(text string) string {
	if before, _, ok := strings.Cut(text, compoundSep); ok {
		text = before
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// BuildTitle joins firstName with the leading words of topic and emotion.
// firstName is used verbatim. Empty segments are kept, so a record with no
// topic produces a title like "John--Anxiety".
func BuildTitle(firstName, topic, emotion string) string {
	return strings.Join([]string{
		firstName,
		ExtractFirstWord(topic),
		ExtractFirstWord(emotion),
	}, titleSep)
}

// TransformRecord returns a copy of r with a computed title and empty notes.
// The emotion segment comes from primary_emotions, falling back to emotion
// when that is absent or empty. r is not modified.
func TransformRecord(r types.Record) types.Record {
	emotion := r.Get(types.ColPrimaryEmotions)
	if emotion == "" {
		emotion = r.Get(types.ColEmotion)
	}

	out := r.Clone()
	out[types.ColNotes] = ""
	out[types.ColTitle] = BuildTitle(r.Get(types.ColFirstName), r.Get(types.ColTopic), emotion)
	return out
}
