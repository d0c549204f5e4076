package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/tienda-shop/tienda/internal/models"
)

// Doc is the product projection stored in the index.
type Doc struct {
	ID    uint   `json:"id"`
	Brand string `json:"brand"`
	Name  string `json:"name"`
	Model string `json:"model"`
	Price string `json:"price"`
	VIP   bool   `json:"vip"`
}

func docFromProduct(p *models.Product, brandName string) Doc {
	return Doc{
		ID:    p.ID,
		Brand: brandName,
		Name:  p.Name,
		Model: p.Model,
		Price: p.Price.StringFixed(2),
		VIP:   p.VIP,
	}
}

func IndexProduct(ctx context.Context, es *elasticsearch.Client, p *models.Product, brandName string) error {
	body, err := json.Marshal(docFromProduct(p, brandName))
	if err != nil {
		return err
	}

	res, err := es.Index(Index, bytes.NewReader(body),
		es.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
		es.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index product %d: %s", p.ID, res.Status())
	}
	return nil
}

func DeleteProduct(ctx context.Context, es *elasticsearch.Client, id uint) error {
	res, err := es.Delete(Index, strconv.FormatUint(uint64(id), 10),
		es.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete product %d: %s", id, res.Status())
	}
	return nil
}

func Search(ctx context.Context, es *elasticsearch.Client, query string, from, size int) (int64, []Doc, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2", "model", "brand"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(Index),
		es.Search.WithBody(strings.NewReader(buf.String())),
	)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var envelope struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source Doc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return 0, nil, err
	}

	docs := make([]Doc, 0, len(envelope.Hits.Hits))
	for _, h := range envelope.Hits.Hits {
		docs = append(docs, h.Source)
	}
	return envelope.Hits.Total.Value, docs, nil
}
