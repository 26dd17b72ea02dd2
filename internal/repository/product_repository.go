package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"systemet/internal/db"
	"systemet/internal/model"
)

var (
	ErrDataUnavailable = errors.New("data unavailable")
	ErrQuery           = errors.New("query error")
	ErrNotFound        = errors.New("product not found")
)

const (
	productTable = "products"

	DefaultSearchLimit = 10
)

// productColumns is the scan order of model.Product.
var productColumns = []string{
	"productNumber",
	"productNameBold",
	"productNameThin",
	"supplierName",
	"apk",
	"price",
	"volume",
	"alcoholPercentage",
	"categoryLevel1",
	"categoryLevel2",
	"categoryLevel3",
	"country",
	"productLaunchDate",
}

var selectProducts = "SELECT " + strings.Join(productColumns, ", ") + " FROM " + productTable

// ProductReader reads the catalog file. Each call opens its own read-only
// connection and releases it before returning.
type ProductReader struct {
	Path string
}

func NewProductReader(path string) *ProductReader {
	return &ProductReader{Path: path}
}

// All returns every product in storage order.
func (r *ProductReader) All(ctx context.Context) ([]model.Product, error) {
	conn, err := r.open(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return queryProducts(ctx, conn, selectProducts)
}

// Search matches query against both names and the supplier, best APK first.
func (r *ProductReader) Search(ctx context.Context, query string, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	conn, err := r.open(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	pattern := "%" + query + "%"
	return queryProducts(ctx, conn, selectProducts+`
		WHERE productNameBold LIKE ? OR productNameThin LIKE ? OR supplierName LIKE ?
		ORDER BY apk DESC
		LIMIT ?`, pattern, pattern, pattern, limit)
}

// Find returns the product with the given article number.
func (r *ProductReader) Find(ctx context.Context, number string) (model.Product, error) {
	conn, err := r.open(ctx)
	if err != nil {
		return model.Product{}, err
	}
	defer conn.Close()

	products, err := queryProducts(ctx, conn, selectProducts+` WHERE productNumber = ? LIMIT 1`, number)
	if err != nil {
		return model.Product{}, err
	}
	if len(products) == 0 {
		return model.Product{}, fmt.Errorf("%w: %s", ErrNotFound, number)
	}
	return products[0], nil
}

func (r *ProductReader) open(ctx context.Context) (*sql.DB, error) {
	conn, err := db.OpenReadOnly(ctx, r.Path)
	if err != nil {
		return nil, classify(err)
	}
	return conn, nil
}

func queryProducts(ctx context.Context, conn *sql.DB, query string, args ...any) ([]model.Product, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	list := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.Number, &p.Name, &p.Name2, &p.Supplier,
			&p.APK, &p.Price, &p.Volume, &p.AlcoholPercentage,
			&p.Category1, &p.Category2, &p.Category3,
			&p.Country, &p.LaunchDate,
		); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", ErrQuery, productTable, err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return list, nil
}

// classify maps a driver error onto ErrDataUnavailable or ErrQuery.
func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if db.IsUnavailable(err) {
		return fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	return fmt.Errorf("%w: %v", ErrQuery, err)
}
