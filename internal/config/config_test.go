package config

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/99designs/keyring"
)

// testKeyring creates a mock keyring for testing
func testKeyring(t *testing.T, initial []keyring.Item) *keyring.ArrayKeyring {
	t.Helper()
	return keyring.NewArrayKeyring(initial)
}

// withMockKeyring sets up a mock keyring for the duration of a test
func withMockKeyring(t *testing.T, ring keyring.Keyring) {
	t.Helper()
	original := openKeyring
	openKeyring = func(cfg keyring.Config) (keyring.Keyring, error) {
		return ring, nil
	}
	t.Cleanup(func() { openKeyring = original })
}

// withFailingKeyring sets up a keyring that always fails to open
func withFailingKeyring(t *testing.T, err error) {
	t.Helper()
	original := openKeyring
	openKeyring = func(cfg keyring.Config) (keyring.Keyring, error) {
		return nil, err
	}
	t.Cleanup(func() { openKeyring = original })
}

func TestProfileKey(t *testing.T) {
	tests := []struct {
		name     string
		profile  string
		expected string
	}{
		{
			name:     "empty profile defaults to accountKey",
			profile:  "",
			expected: accountKey,
		},
		{
			name:     "default profile uses accountKey",
			profile:  "default",
			expected: accountKey,
		},
		{
			name:     "named profile uses prefix",
			profile:  "home",
			expected: profilePrefix + "home",
		},
		{
			name:     "another named profile",
			profile:  "production",
			expected: profilePrefix + "production",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := profileKey(tt.profile)
			if result != tt.expected {
				t.Errorf("profileKey(%q) = %q, want %q", tt.profile, result, tt.expected)
			}
		})
	}
}

func TestNormalizeProfiles(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "empty list",
			input:    []string{},
			expected: nil,
		},
		{
			name:     "duplicates removed",
			input:    []string{"default", "home", "default", "production", "home"},
			expected: []string{"default", "home", "production"},
		},
		{
			name:     "whitespace trimmed",
			input:    []string{" default ", "  home  ", "production"},
			expected: []string{"default", "home", "production"},
		},
		{
			name:     "empty strings removed",
			input:    []string{"default", "", "home", "  ", "production"},
			expected: []string{"default", "home", "production"},
		},
		{
			name:     "preserves order with duplicates",
			input:    []string{"a", "b", "a", "c", "b", "d"},
			expected: []string{"a", "b", "c", "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizeProfiles(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("normalizeProfiles(%v) = %v, want %v", tt.input, result, tt.expected)
				return
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("normalizeProfiles(%v)[%d] = %q, want %q", tt.input, i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLoadProfileIndex(t *testing.T) {
	tests := []struct {
		name        string
		items       []keyring.Item
		expected    []string
		expectError bool
	}{
		{
			name:        "no index exists",
			items:       []keyring.Item{},
			expected:    []string{},
			expectError: false,
		},
		{
			name: "valid index with profiles",
			items: []keyring.Item{
				{
					Key:  profileIndexKey,
					Data: []byte(`["default","home","production"]`),
				},
			},
			expected:    []string{"default", "home", "production"},
			expectError: false,
		},
		{
			name: "invalid JSON",
			items: []keyring.Item{
				{
					Key:  profileIndexKey,
					Data: []byte(`not valid json`),
				},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ring := testKeyring(t, tt.items)
			result, err := loadProfileIndex(ring)

			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if len(result) != len(tt.expected) {
				t.Errorf("loadProfileIndex() = %v, want %v", result, tt.expected)
				return
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("loadProfileIndex()[%d] = %q, want %q", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLoadAccountFromEnv(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expected    Account
		expectError bool
	}{
		{
			name: "all env vars set",
			envVars: map[string]string{
				envBaseURL:  "https://booru.example.com",
				envUsername: "alice",
				envToken:    "sz-token-123",
			},
			expected: Account{
				BaseURL:  "https://booru.example.com",
				Username: "alice",
				Token:    "sz-token-123",
			},
		},
		{
			name: "trailing slash stripped from URL",
			envVars: map[string]string{
				envBaseURL:  "https://booru.example.com/",
				envUsername: "alice",
				envToken:    "sz-token",
			},
			expected: Account{
				BaseURL:  "https://booru.example.com",
				Username: "alice",
				Token:    "sz-token",
			},
		},
		{
			name: "URL alone is anonymous",
			envVars: map[string]string{
				envBaseURL: "https://booru.example.com",
			},
			expected: Account{
				BaseURL: "https://booru.example.com",
			},
		},
		{
			name: "username without token",
			envVars: map[string]string{
				envBaseURL:  "https://booru.example.com",
				envUsername: "alice",
			},
			expectError: true,
		},
		{
			name: "token without username",
			envVars: map[string]string{
				envBaseURL: "https://booru.example.com",
				envToken:   "sz-token",
			},
			expectError: true,
		},
		{
			name: "whitespace handling",
			envVars: map[string]string{
				envBaseURL:  "  https://booru.example.com  ",
				envUsername: "  alice  ",
				envToken:    "  sz-token  ",
			},
			expected: Account{
				BaseURL:  "https://booru.example.com",
				Username: "alice",
				Token:    "sz-token",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(envBaseURL, "")
			t.Setenv(envUsername, "")
			t.Setenv(envToken, "")
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			result, err := LoadAccount()

			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if result.BaseURL != tt.expected.BaseURL {
				t.Errorf("BaseURL = %q, want %q", result.BaseURL, tt.expected.BaseURL)
			}
			if result.Username != tt.expected.Username {
				t.Errorf("Username = %q, want %q", result.Username, tt.expected.Username)
			}
			if result.Token != tt.expected.Token {
				t.Errorf("Token = %q, want %q", result.Token, tt.expected.Token)
			}
		})
	}
}

func TestAccountAnonymous(t *testing.T) {
	anon := Account{BaseURL: "https://booru.example.com"}
	if !anon.Anonymous() {
		t.Error("Expected account without credentials to be anonymous")
	}
	authed := Account{BaseURL: "https://booru.example.com", Username: "alice", Token: "sz-token"}
	if authed.Anonymous() {
		t.Error("Expected account with credentials to not be anonymous")
	}
}

func TestKeyringConfig(t *testing.T) {
	t.Setenv(envKeyringBackend, "")
	t.Setenv(envCredentialsDir, "")

	cfg := keyringConfig()
	if cfg.ServiceName != serviceName {
		t.Errorf("ServiceName = %q, want %q", cfg.ServiceName, serviceName)
	}
	if cfg.FileDir == "" {
		t.Error("FileDir should be configured in auto backend mode")
	}
	if cfg.FilePasswordFunc == nil {
		t.Error("FilePasswordFunc should be configured in auto backend mode")
	}
}

func TestKeyringConfig_FileBackendOverride(t *testing.T) {
	t.Setenv(envKeyringBackend, "file")

	base := t.TempDir()
	t.Setenv(envCredentialsDir, base)

	cfg := keyringConfig()
	if len(cfg.AllowedBackends) != 1 || cfg.AllowedBackends[0] != keyring.FileBackend {
		t.Fatalf("AllowedBackends = %v, want [%s]", cfg.AllowedBackends, keyring.FileBackend)
	}
	expectedDir := filepath.Join(base, "keyring")
	if cfg.FileDir != expectedDir {
		t.Fatalf("FileDir = %q, want %q", cfg.FileDir, expectedDir)
	}
	if cfg.FilePasswordFunc == nil {
		t.Fatal("FilePasswordFunc is nil; expected configured password function")
	}
}

func TestKeyringConfig_SystemBackendOverride(t *testing.T) {
	t.Setenv(envKeyringBackend, "system")

	cfg := keyringConfig()
	if cfg.FileDir != "" {
		t.Fatalf("FileDir = %q, want empty for system backend", cfg.FileDir)
	}
	if cfg.FilePasswordFunc != nil {
		t.Fatal("FilePasswordFunc should be nil for system backend")
	}
	if len(cfg.AllowedBackends) != 0 {
		t.Fatalf("AllowedBackends = %v, want nil/empty for system backend", cfg.AllowedBackends)
	}
}

func TestShouldForceFileBackend(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		backend  string
		dbusAddr string
		want     bool
	}{
		{
			name:     "explicit file backend always forces file",
			goos:     "darwin",
			backend:  keyringBackendFile,
			dbusAddr: "ignored",
			want:     true,
		},
		{
			name:     "auto backend on headless linux forces file",
			goos:     "linux",
			backend:  keyringBackendAuto,
			dbusAddr: "",
			want:     true,
		},
		{
			name:     "auto backend on linux desktop does not force file",
			goos:     "linux",
			backend:  keyringBackendAuto,
			dbusAddr: "unix:path=/run/user/1000/bus",
			want:     false,
		},
		{
			name:     "system backend never forces file",
			goos:     "linux",
			backend:  keyringBackendSystem,
			dbusAddr: "",
			want:     false,
		},
		{
			name:     "auto backend on non-linux does not force file",
			goos:     "windows",
			backend:  keyringBackendAuto,
			dbusAddr: "",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shouldForceFileBackend(tt.goos, tt.backend, tt.dbusAddr)
			if got != tt.want {
				t.Fatalf("shouldForceFileBackend(%q, %q, %q) = %v, want %v", tt.goos, tt.backend, tt.dbusAddr, got, tt.want)
			}
		})
	}
}

func TestKeyringBackendMode(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		wantMode string
	}{
		{
			name:     "default auto",
			value:    "",
			wantMode: keyringBackendAuto,
		},
		{
			name:     "file backend",
			value:    "file",
			wantMode: keyringBackendFile,
		},
		{
			name:     "system backend",
			value:    "system",
			wantMode: keyringBackendSystem,
		},
		{
			name:     "unknown value falls back to auto",
			value:    "weird",
			wantMode: keyringBackendAuto,
		},
		{
			name:     "native alias maps to system",
			value:    "native",
			wantMode: keyringBackendSystem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(envKeyringBackend, tt.value)
			got := keyringBackendMode()
			if got != tt.wantMode {
				t.Fatalf("keyringBackendMode() = %q, want %q", got, tt.wantMode)
			}
		})
	}
}

func TestKeyringFileDir_DefaultsToUserConfigDir(t *testing.T) {
	t.Setenv(envCredentialsDir, "")

	fakeConfigDir := t.TempDir()
	original := userConfigDir
	userConfigDir = func() (string, error) { return fakeConfigDir, nil }
	t.Cleanup(func() { userConfigDir = original })

	got := keyringFileDir()
	want := filepath.Join(fakeConfigDir, serviceName, "keyring")
	if got != want {
		t.Fatalf("keyringFileDir() = %q, want %q", got, want)
	}
}

func TestKeyringFilePassword_FromEnv(t *testing.T) {
	t.Setenv(envKeyringPassword, "env-pass")

	password, err := keyringFilePassword("prompt")
	if err != nil {
		t.Fatalf("keyringFilePassword() unexpected error: %v", err)
	}
	if password != "env-pass" {
		t.Fatalf("keyringFilePassword() = %q, want %q", password, "env-pass")
	}
}

func TestKeyringFilePassword_NonInteractiveError(t *testing.T) {
	t.Setenv(envKeyringPassword, "")

	original := stdinHasTTY
	stdinHasTTY = func() bool { return false }
	t.Cleanup(func() { stdinHasTTY = original })

	_, err := keyringFilePassword("prompt")
	if err == nil {
		t.Fatal("expected error for missing keyring password in non-interactive mode")
	}
	if !strings.Contains(err.Error(), envKeyringPassword) {
		t.Fatalf("error = %q, want to mention %s", err.Error(), envKeyringPassword)
	}
}

func TestSaveProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile string
		account Account
	}{
		{
			name:    "save default profile with empty name",
			profile: "",
			account: Account{
				BaseURL:  "https://booru.example.com",
				Username: "alice",
				Token:    "token123",
			},
		},
		{
			name:    "save named profile",
			profile: "home",
			account: Account{
				BaseURL:  "https://home.example.com",
				Username: "alice",
				Token:    "hometoken",
			},
		},
		{
			name:    "save anonymous profile",
			profile: "public",
			account: Account{
				BaseURL: "https://public.example.com",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ring := testKeyring(t, nil)
			withMockKeyring(t, ring)

			if err := SaveProfile(tt.profile, tt.account); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			profile := tt.profile
			if profile == "" {
				profile = defaultProfile
			}

			item, err := ring.Get(profileKey(profile))
			if err != nil {
				t.Fatalf("Failed to get saved profile: %v", err)
			}

			var saved Account
			if err := json.Unmarshal(item.Data, &saved); err != nil {
				t.Fatalf("Failed to unmarshal saved account: %v", err)
			}

			if saved != tt.account {
				t.Errorf("Saved account = %+v, want %+v", saved, tt.account)
			}
		})
	}
}

func TestSaveProfileKeyringError(t *testing.T) {
	withFailingKeyring(t, errors.New("keyring unavailable"))

	err := SaveProfile("test", Account{BaseURL: "https://booru.example.com", Username: "alice", Token: "token"})
	if err == nil {
		t.Error("Expected error but got nil")
	}
}

func TestLoadProfile(t *testing.T) {
	tests := []struct {
		name        string
		profile     string
		setup       func(*keyring.ArrayKeyring)
		expected    Account
		expectError bool
	}{
		{
			name:    "load existing default profile",
			profile: "",
			setup: func(ring *keyring.ArrayKeyring) {
				account := Account{BaseURL: "https://booru.example.com", Username: "alice", Token: "token"}
				data, _ := json.Marshal(account)
				_ = ring.Set(keyring.Item{Key: accountKey, Data: data})
			},
			expected: Account{BaseURL: "https://booru.example.com", Username: "alice", Token: "token"},
		},
		{
			name:    "load existing named profile",
			profile: "home",
			setup: func(ring *keyring.ArrayKeyring) {
				account := Account{BaseURL: "https://home.example.com", Username: "bob", Token: "hometoken"}
				data, _ := json.Marshal(account)
				_ = ring.Set(keyring.Item{Key: profilePrefix + "home", Data: data})
			},
			expected: Account{BaseURL: "https://home.example.com", Username: "bob", Token: "hometoken"},
		},
		{
			name:        "load non-existent profile",
			profile:     "nonexistent",
			setup:       func(ring *keyring.ArrayKeyring) {},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ring := testKeyring(t, nil)
			tt.setup(ring)
			withMockKeyring(t, ring)

			result, err := LoadProfile(tt.profile)

			if tt.expectError {
				if !errors.Is(err, ErrNotConfigured) {
					t.Errorf("Expected ErrNotConfigured, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if result != tt.expected {
				t.Errorf("Account = %+v, want %+v", result, tt.expected)
			}
		})
	}
}

func TestDeleteProfileSwitchesCurrentProfile(t *testing.T) {
	ring := testKeyring(t, nil)

	defaultAccount := Account{BaseURL: "https://default.example.com", Username: "alice", Token: "defaulttoken"}
	homeAccount := Account{BaseURL: "https://home.example.com", Username: "alice", Token: "hometoken"}

	defaultData, _ := json.Marshal(defaultAccount)
	homeData, _ := json.Marshal(homeAccount)

	_ = ring.Set(keyring.Item{Key: accountKey, Data: defaultData})
	_ = ring.Set(keyring.Item{Key: profilePrefix + "home", Data: homeData})
	_ = saveProfileIndex(ring, []string{"default", "home"})
	_ = ring.Set(keyring.Item{Key: currentProfileKey, Data: []byte("home")})

	withMockKeyring(t, ring)

	if err := DeleteProfile("home"); err != nil {
		t.Fatalf("DeleteProfile error: %v", err)
	}

	item, err := ring.Get(currentProfileKey)
	if err != nil {
		t.Fatalf("Failed to get current profile: %v", err)
	}
	if string(item.Data) != "default" {
		t.Errorf("Current profile = %q, want %q", string(item.Data), "default")
	}
}

func TestListProfiles(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*keyring.ArrayKeyring)
		expected []string
	}{
		{
			name: "list profiles from index",
			setup: func(ring *keyring.ArrayKeyring) {
				_ = saveProfileIndex(ring, []string{"default", "home", "production"})
			},
			expected: []string{"default", "home", "production"},
		},
		{
			name: "empty index but default account exists",
			setup: func(ring *keyring.ArrayKeyring) {
				account := Account{BaseURL: "https://booru.example.com", Username: "alice", Token: "token"}
				data, _ := json.Marshal(account)
				_ = ring.Set(keyring.Item{Key: accountKey, Data: data})
			},
			expected: []string{"default"},
		},
		{
			name:     "no profiles",
			setup:    func(ring *keyring.ArrayKeyring) {},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ring := testKeyring(t, nil)
			tt.setup(ring)
			withMockKeyring(t, ring)

			result, err := ListProfiles()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if len(result) != len(tt.expected) {
				t.Errorf("ListProfiles() = %v, want %v", result, tt.expected)
				return
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("ListProfiles()[%d] = %q, want %q", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestCurrentProfile(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*keyring.ArrayKeyring)
		expected string
	}{
		{
			name: "current profile is set",
			setup: func(ring *keyring.ArrayKeyring) {
				_ = ring.Set(keyring.Item{Key: currentProfileKey, Data: []byte("home")})
			},
			expected: "home",
		},
		{
			name:     "no current profile set returns default",
			setup:    func(ring *keyring.ArrayKeyring) {},
			expected: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ring := testKeyring(t, nil)
			tt.setup(ring)
			withMockKeyring(t, ring)

			result, err := CurrentProfile()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if result != tt.expected {
				t.Errorf("CurrentProfile() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestLoadAccountFromProfileEnv(t *testing.T) {
	t.Setenv(envBaseURL, "")
	t.Setenv(envProfile, "home")

	ring := testKeyring(t, nil)
	account := Account{BaseURL: "https://home.example.com", Username: "alice", Token: "hometoken"}
	data, _ := json.Marshal(account)
	_ = ring.Set(keyring.Item{Key: profilePrefix + "home", Data: data})

	withMockKeyring(t, ring)

	result, err := LoadAccount()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.BaseURL != account.BaseURL {
		t.Errorf("BaseURL = %q, want %q", result.BaseURL, account.BaseURL)
	}
}

func TestResolveClientConfig(t *testing.T) {
	withMockKeyring(t, testKeyring(t, nil))
	t.Setenv(envBaseURL, "")
	t.Setenv(envUsername, "")
	t.Setenv(envToken, "")

	t.Run("flag overrides", func(t *testing.T) {
		cfg, err := ResolveClientConfig("https://flag.example.com/", "alice", "flagtoken")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.BaseURL != "https://flag.example.com" {
			t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, "https://flag.example.com")
		}
		if cfg.Username != "alice" || cfg.Token != "flagtoken" {
			t.Errorf("Credentials = %q/%q, want alice/flagtoken", cfg.Username, cfg.Token)
		}
	})

	t.Run("env beats profile", func(t *testing.T) {
		t.Setenv(envBaseURL, "https://env.example.com")
		cfg, err := ResolveClientConfig("", "", "")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.BaseURL != "https://env.example.com" {
			t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, "https://env.example.com")
		}
		if !cfg.Anonymous() {
			t.Error("Expected anonymous config")
		}
	})

	t.Run("nothing configured", func(t *testing.T) {
		if _, err := ResolveClientConfig("", "", ""); err == nil {
			t.Error("Expected error but got nil")
		}
	})

	t.Run("username without token", func(t *testing.T) {
		if _, err := ResolveClientConfig("https://flag.example.com", "alice", ""); err == nil {
			t.Error("Expected error but got nil")
		}
	})
}
