package scanner

import "testing"

func TestValidatorProfileMatchesSuppressesKnownNoise(t *testing.T) {
	p := &ValidatorProfile{
		Signatures: []Signature{{Code: 404, ContentLen: 1200}},
		ScanFolder: true,
	}

	if !p.Matches(Finding{Code: 404, ContentLen: 1203}) {
		t.Error("expected a near-identical response to match within tolerance")
	}
	if p.Matches(Finding{Code: 404, ContentLen: 5000}) {
		t.Error("expected a wildly different size not to match")
	}
	if p.Matches(Finding{Code: 200, ContentLen: 1200}) {
		t.Error("expected a different status code not to match")
	}
}

func TestValidatorProfileMatchesNilProfile(t *testing.T) {
	var p *ValidatorProfile
	if p.Matches(Finding{Code: 404}) {
		t.Error("a nil profile should never suppress anything")
	}
}

func TestValidatorBuildsConsistentProfile(t *testing.T) {
	toValidate := make(chan Finding, 4)
	toScan := make(chan DirectoryInfo, 4)

	v := &Validator{
		ToValidate: toValidate,
		ToScan:     toScan,
		profiles:   make(map[string]*ValidatorProfile),
		log:        noopLogger{},
	}
	v.probe = func(url string) (int, int64, bool) {
		return 404, 512, true
	}

	toValidate <- Finding{URL: "http://example.com/secret/", IsDirectory: true}
	toValidate <- Finding{URL: EndMarkerURL}
	v.Run()

	info := <-toScan
	if info.URL != "http://example.com/secret/" {
		t.Fatalf("unexpected DirectoryInfo.URL: %q", info.URL)
	}
	if !info.Validator.ScanFolder {
		t.Fatal("expected consistent calibration to allow descent")
	}
	if len(info.Validator.Signatures) != 1 {
		t.Fatalf("expected one signature, got %d", len(info.Validator.Signatures))
	}
	if info.Validator.Signatures[0].Code != 404 || info.Validator.Signatures[0].ContentLen != 512 {
		t.Errorf("unexpected signature: %+v", info.Validator.Signatures[0])
	}
}

func TestValidatorDisablesDescentOnInconsistentCalibration(t *testing.T) {
	toValidate := make(chan Finding, 4)
	toScan := make(chan DirectoryInfo, 4)

	calls := 0
	v := &Validator{
		ToValidate: toValidate,
		ToScan:     toScan,
		profiles:   make(map[string]*ValidatorProfile),
		log:        noopLogger{},
	}
	v.probe = func(url string) (int, int64, bool) {
		calls++
		if calls%2 == 0 {
			return 200, 4096, true
		}
		return 404, 512, true
	}

	toValidate <- Finding{URL: "http://flaky.example.com/dir/", IsDirectory: true}
	toValidate <- Finding{URL: EndMarkerURL}
	v.Run()

	info := <-toScan
	if info.Validator.ScanFolder {
		t.Fatal("expected inconsistent calibration to disable descent")
	}
	if info.Validator.Alert == "" {
		t.Error("expected an alert message to explain why descent was disabled")
	}
}

func TestValidatorForceScanOverridesUnreliableCalibration(t *testing.T) {
	toValidate := make(chan Finding, 4)
	toScan := make(chan DirectoryInfo, 4)

	calls := 0
	v := &Validator{
		ToValidate: toValidate,
		ToScan:     toScan,
		scanOpts:   ScanOpts{ForceScan: true},
		profiles:   make(map[string]*ValidatorProfile),
		log:        noopLogger{},
	}
	v.probe = func(url string) (int, int64, bool) {
		calls++
		if calls%2 == 0 {
			return 200, 4096, true
		}
		return 404, 512, true
	}

	toValidate <- Finding{URL: "http://flaky.example.com/dir/", IsDirectory: true}
	toValidate <- Finding{URL: EndMarkerURL}
	v.Run()

	info := <-toScan
	if !info.Validator.ScanFolder {
		t.Fatal("expected force-scan to override an unreliable calibration")
	}
}
