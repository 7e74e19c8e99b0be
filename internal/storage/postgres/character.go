package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/norvaldb/land-of-mist/internal/game/character"
	"github.com/norvaldb/land-of-mist/internal/game/class"
	"github.com/norvaldb/land-of-mist/internal/game/currency"
	"github.com/norvaldb/land-of-mist/internal/game/item"
)

// ErrCharacterNotFound is returned when a character lookup yields no results.
var ErrCharacterNotFound = errors.New("character not found")

// ErrCharacterNameTaken is returned when creating a character whose name is
// already in use.
var ErrCharacterNameTaken = errors.New("character name already taken")

// CharacterRepository provides character persistence operations.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a CharacterRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

const characterColumns = `
	id, name, class, level, experience,
	strength, dexterity, constitution, intelligence, wisdom, charisma,
	max_hp, current_hp, max_mana, current_mana, copper,
	weapon_id, armor_id, shield_id, weapon_poison, poison_charges,
	created_at, updated_at`

// Create inserts a new character and returns it with timestamps set.
//
// Precondition: c.ID and c.Name must be non-empty.
// Postcondition: Returns the stored character, or ErrCharacterNameTaken on
// duplicate names.
func (r *CharacterRepository) Create(ctx context.Context, c character.Character) (character.Character, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO characters
			(id, name, class, level, experience,
			 strength, dexterity, constitution, intelligence, wisdom, charisma,
			 max_hp, current_hp, max_mana, current_mana, copper,
			 weapon_id, armor_id, shield_id, weapon_poison, poison_charges)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		RETURNING`+characterColumns,
		c.ID, c.Name, string(c.Class), c.Level, c.Experience,
		c.Attributes.Strength, c.Attributes.Dexterity, c.Attributes.Constitution,
		c.Attributes.Intelligence, c.Attributes.Wisdom, c.Attributes.Charisma,
		c.MaxHP, c.CurrentHP, c.MaxMana, c.CurrentMana, c.Purse.TotalCopper(),
		c.WeaponID, c.ArmorID, c.ShieldID, string(c.WeaponPoison), c.PoisonCharges,
	)
	out, err := scanCharacter(row)
	if err != nil {
		if isDuplicateKeyError(err) {
			return character.Character{}, ErrCharacterNameTaken
		}
		return character.Character{}, fmt.Errorf("inserting character: %w", err)
	}
	return out, nil
}

// GetByID retrieves a character by its primary key.
//
// Postcondition: Returns the Character or ErrCharacterNotFound.
func (r *CharacterRepository) GetByID(ctx context.Context, id string) (character.Character, error) {
	row := r.db.QueryRow(ctx,
		`SELECT`+characterColumns+` FROM characters WHERE id = $1`, id)
	c, err := scanCharacter(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return character.Character{}, ErrCharacterNotFound
		}
		return character.Character{}, fmt.Errorf("querying character: %w", err)
	}
	return c, nil
}

// GetByName retrieves a character by its unique name.
//
// Postcondition: Returns the Character or ErrCharacterNotFound.
func (r *CharacterRepository) GetByName(ctx context.Context, name string) (character.Character, error) {
	row := r.db.QueryRow(ctx,
		`SELECT`+characterColumns+` FROM characters WHERE name = $1`, name)
	c, err := scanCharacter(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return character.Character{}, ErrCharacterNotFound
		}
		return character.Character{}, fmt.Errorf("querying character: %w", err)
	}
	return c, nil
}

// List returns all characters ordered by creation time.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *CharacterRepository) List(ctx context.Context) ([]character.Character, error) {
	rows, err := r.db.Query(ctx,
		`SELECT`+characterColumns+` FROM characters ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	defer rows.Close()

	chars := make([]character.Character, 0)
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning character row: %w", err)
		}
		chars = append(chars, c)
	}
	return chars, rows.Err()
}

// Save persists every mutable field of the character: progression, pools,
// purse, equipment, and weapon poison state.
//
// Precondition: c.ID must reference an existing row.
// Postcondition: Returns nil on success, ErrCharacterNotFound if no row
// was updated.
func (r *CharacterRepository) Save(ctx context.Context, c character.Character) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE characters SET
			level = $2, experience = $3,
			strength = $4, dexterity = $5, constitution = $6,
			intelligence = $7, wisdom = $8, charisma = $9,
			max_hp = $10, current_hp = $11, max_mana = $12, current_mana = $13,
			copper = $14,
			weapon_id = $15, armor_id = $16, shield_id = $17,
			weapon_poison = $18, poison_charges = $19,
			updated_at = NOW()
		WHERE id = $1`,
		c.ID, c.Level, c.Experience,
		c.Attributes.Strength, c.Attributes.Dexterity, c.Attributes.Constitution,
		c.Attributes.Intelligence, c.Attributes.Wisdom, c.Attributes.Charisma,
		c.MaxHP, c.CurrentHP, c.MaxMana, c.CurrentMana,
		c.Purse.TotalCopper(),
		c.WeaponID, c.ArmorID, c.ShieldID,
		string(c.WeaponPoison), c.PoisonCharges,
	)
	if err != nil {
		return fmt.Errorf("saving character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCharacterNotFound
	}
	return nil
}

// Delete removes a character.
//
// Postcondition: Returns nil on success, ErrCharacterNotFound if the id
// does not exist.
func (r *CharacterRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM characters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCharacterNotFound
	}
	return nil
}

// scanCharacter reads one characterColumns row into a Character,
// rebuilding the value types (class ID, purse, poison kind) from their
// column encodings.
func scanCharacter(row pgx.Row) (character.Character, error) {
	var (
		c      character.Character
		cls    string
		copper int
		poison string
	)
	if err := row.Scan(
		&c.ID, &c.Name, &cls, &c.Level, &c.Experience,
		&c.Attributes.Strength, &c.Attributes.Dexterity, &c.Attributes.Constitution,
		&c.Attributes.Intelligence, &c.Attributes.Wisdom, &c.Attributes.Charisma,
		&c.MaxHP, &c.CurrentHP, &c.MaxMana, &c.CurrentMana, &copper,
		&c.WeaponID, &c.ArmorID, &c.ShieldID, &poison, &c.PoisonCharges,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return character.Character{}, err
	}
	c.Class = class.ID(cls)
	c.Purse = currency.FromCopper(copper)
	c.WeaponPoison = item.PoisonKind(poison)
	return c, nil
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	// pgx wraps PostgreSQL errors; check for SQLSTATE 23505 (unique_violation)
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
