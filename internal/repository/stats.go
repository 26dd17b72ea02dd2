package repository

import (
	"context"
	"database/sql"
	"fmt"

	"systemet/internal/model"
)

const (
	topCategoryLimit = 10
	bestValueLimit   = 10
)

type Stats struct {
	TotalProducts int64           `json:"total_products"`
	AvgPrice      float64         `json:"avg_price"`
	MinPrice      float64         `json:"min_price"`
	MaxPrice      float64         `json:"max_price"`
	AvgAPK        float64         `json:"avg_apk"`
	TopCategories []CategoryStats `json:"top_categories"`
	BestValue     []BestValue     `json:"best_value"`
}

type CategoryStats struct {
	Category string  `json:"category"`
	Count    int64   `json:"count"`
	AvgPrice float64 `json:"avg_price"`
	AvgAPK   float64 `json:"avg_apk"`
}

type BestValue struct {
	Number            string  `json:"number"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	APK               float64 `json:"apk"`
	Volume            float64 `json:"volume"`
	AlcoholPercentage float64 `json:"alcohol"`
}

// Stats aggregates the catalog: price range, average APK, the largest
// level-1 categories and the products with the highest APK.
func (r *ProductReader) Stats(ctx context.Context) (*Stats, error) {
	conn, err := r.open(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	s := &Stats{TopCategories: []CategoryStats{}, BestValue: []BestValue{}}

	var avgPrice, minPrice, maxPrice, avgAPK sql.NullFloat64
	err = conn.QueryRowContext(ctx, `
		SELECT COUNT(*), AVG(price), MIN(price), MAX(price), AVG(apk)
		FROM products
	`).Scan(&s.TotalProducts, &avgPrice, &minPrice, &maxPrice, &avgAPK)
	if err != nil {
		return nil, classify(err)
	}
	s.AvgPrice, s.MinPrice, s.MaxPrice, s.AvgAPK = avgPrice.Float64, minPrice.Float64, maxPrice.Float64, avgAPK.Float64

	if s.TopCategories, err = topCategories(ctx, conn); err != nil {
		return nil, err
	}
	if s.BestValue, err = bestValue(ctx, conn); err != nil {
		return nil, err
	}
	return s, nil
}

func topCategories(ctx context.Context, conn *sql.DB) ([]CategoryStats, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT categoryLevel1, COUNT(*) AS count, AVG(price), AVG(apk)
		FROM products
		WHERE categoryLevel1 IS NOT NULL
		GROUP BY categoryLevel1
		ORDER BY count DESC, categoryLevel1 ASC
		LIMIT ?
	`, topCategoryLimit)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	list := []CategoryStats{}
	for rows.Next() {
		var (
			c                CategoryStats
			category         model.Field
			avgPrice, avgAPK sql.NullFloat64
		)
		if err := rows.Scan(&category, &c.Count, &avgPrice, &avgAPK); err != nil {
			return nil, fmt.Errorf("%w: scan categories: %v", ErrQuery, err)
		}
		c.Category, c.AvgPrice, c.AvgAPK = category.String(), avgPrice.Float64, avgAPK.Float64
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return list, nil
}

func bestValue(ctx context.Context, conn *sql.DB) ([]BestValue, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT productNumber, productNameBold, productNameThin, price, apk, volume, alcoholPercentage
		FROM products
		WHERE apk IS NOT NULL AND apk > 0
		ORDER BY apk DESC
		LIMIT ?
	`, bestValueLimit)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	list := []BestValue{}
	for rows.Next() {
		var (
			b                           BestValue
			number, bold, thin          model.Field
			price, apk, volume, alcohol sql.NullFloat64
		)
		if err := rows.Scan(&number, &bold, &thin, &price, &apk, &volume, &alcohol); err != nil {
			return nil, fmt.Errorf("%w: scan best value: %v", ErrQuery, err)
		}
		b.Number = number.String()
		b.Name = DisplayName(model.Product{Name: bold, Name2: thin})
		b.Price, b.APK, b.Volume, b.AlcoholPercentage = price.Float64, apk.Float64, volume.Float64, alcohol.Float64
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return list, nil
}

// DisplayName joins both product names, e.g. "Norrlands Guld" + "Export".
func DisplayName(p model.Product) string {
	switch {
	case p.Name.Text == "":
		return p.Name2.Text
	case p.Name2.Text == "":
		return p.Name.Text
	}
	return p.Name.Text + " " + p.Name2.Text
}
