package mocks

//go:generate mockery --name ClaimStore --srcpkg github.com/claimledger-lab/claimledger/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name Notifier --srcpkg github.com/claimledger-lab/claimledger/internal/notify --output ./notify --outpkg notifymocks --with-expecter
//go:generate mockery --name Extractor --srcpkg github.com/claimledger-lab/claimledger/internal/extraction --output ./extraction --outpkg extractionmocks --with-expecter
//go:generate mockery --name Describer --srcpkg github.com/claimledger-lab/claimledger/internal/extraction --output ./extraction --outpkg extractionmocks --with-expecter
//go:generate mockery --name Scorer --srcpkg github.com/claimledger-lab/claimledger/internal/fraud --output ./fraud --outpkg fraudmocks --with-expecter
