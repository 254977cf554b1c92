package remote

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Map validates a response and decodes its items. Any status other than 200,
// or a body that does not match the expected shape, yields ErrInvalidData
// and never a partial list. Keys are matched exactly, including case.
func Map(body []byte, statusCode int) ([]RemoteFeedItem, error) {
	if statusCode != http.StatusOK {
		return nil, ErrInvalidData
	}

	items, err := decodeItems(body)
	if err != nil {
		return nil, ErrInvalidData
	}
	return items, nil
}

var errMissingItems = errors.New("missing items")

func decodeItems(body []byte) ([]RemoteFeedItem, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, err
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(root["items"], &elems); err != nil {
		return nil, err
	}
	// a missing or null items key is not an empty feed
	if elems == nil {
		return nil, errMissingItems
	}

	items := make([]RemoteFeedItem, 0, len(elems))
	for _, elem := range elems {
		item, err := decodeItem(elem)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func decodeItem(raw json.RawMessage) (RemoteFeedItem, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return RemoteFeedItem{}, err
	}

	var item RemoteFeedItem
	targets := map[string]any{
		"id":          &item.ID,
		"description": &item.Description,
		"location":    &item.Location,
		"image":       &item.Image,
	}
	for key, target := range targets {
		value, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, target); err != nil {
			return RemoteFeedItem{}, err
		}
	}

	if err := validate.Struct(item); err != nil {
		return RemoteFeedItem{}, err
	}
	return item, nil
}
