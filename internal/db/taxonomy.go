package db

import (
	"context"
	"fmt"
)

func (r *Repository) Categories(ctx context.Context) ([]Category, error) {
	categories := []Category{}
	err := r.db.ModelContext(ctx, &categories).
		OrderExpr(`"t"."name" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	return categories, nil
}

func (r *Repository) CategoryByID(ctx context.Context, id int) (*Category, error) {
	return r.oneCategory(ctx, `"t"."id" = ?`, id)
}

func (r *Repository) CategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	return r.oneCategory(ctx, `"t"."slug" = ?`, slug)
}

func (r *Repository) oneCategory(ctx context.Context, where string, param interface{}) (*Category, error) {
	category := &Category{}
	err := r.db.ModelContext(ctx, category).Where(where, param).Select()

	if notFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

func (r *Repository) AddCategory(ctx context.Context, category *Category) (*Category, error) {
	_, err := r.db.ModelContext(ctx, category).Returning("*").Insert()
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	return category, nil
}

// UpdateCategory applies the patch and returns the updated row, or nil when it does not exist.
func (r *Repository) UpdateCategory(ctx context.Context, id int, patch CategoryPatch) (*Category, error) {
	if patch.IsEmpty() {
		return r.CategoryByID(ctx, id)
	}

	category := &Category{}
	res, err := r.db.ModelContext(ctx, category).
		Apply(patch.Apply).
		Where(`"t"."id" = ?`, id).
		Returning("*").
		Update()

	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	} else if res.RowsAffected() == 0 {
		return nil, nil
	}

	return category, nil
}

// DeleteCategory removes the category; referencing articles keep existing with a NULL category.
func (r *Repository) DeleteCategory(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ModelContext(ctx, (*Category)(nil)).
		Where(`"t"."id" = ?`, id).
		Delete()

	if err != nil {
		return false, fmt.Errorf("failed to delete category: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

func (r *Repository) Authors(ctx context.Context) ([]Author, error) {
	authors := []Author{}
	err := r.db.ModelContext(ctx, &authors).
		OrderExpr(`"t"."name" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}

	return authors, nil
}

func (r *Repository) AuthorByID(ctx context.Context, id int) (*Author, error) {
	author := &Author{}
	err := r.db.ModelContext(ctx, author).Where(`"t"."id" = ?`, id).Select()

	if notFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	return author, nil
}

func (r *Repository) AddAuthor(ctx context.Context, author *Author) (*Author, error) {
	_, err := r.db.ModelContext(ctx, author).Returning("*").Insert()
	if err != nil {
		return nil, fmt.Errorf("failed to insert author: %w", err)
	}

	return author, nil
}

func (r *Repository) UpdateAuthor(ctx context.Context, id int, patch AuthorPatch) (*Author, error) {
	if patch.IsEmpty() {
		return r.AuthorByID(ctx, id)
	}

	author := &Author{}
	res, err := r.db.ModelContext(ctx, author).
		Apply(patch.Apply).
		Where(`"t"."id" = ?`, id).
		Returning("*").
		Update()

	if err != nil {
		return nil, fmt.Errorf("failed to update author: %w", err)
	} else if res.RowsAffected() == 0 {
		return nil, nil
	}

	return author, nil
}

func (r *Repository) DeleteAuthor(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ModelContext(ctx, (*Author)(nil)).
		Where(`"t"."id" = ?`, id).
		Delete()

	if err != nil {
		return false, fmt.Errorf("failed to delete author: %w", err)
	}

	return res.RowsAffected() > 0, nil
}
