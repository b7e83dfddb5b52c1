package mocks

//go:generate mockery --name ReferralStore --srcpkg github.com/tierline-lab/tierline/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name MetricsStore --srcpkg github.com/tierline-lab/tierline/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name Source --srcpkg github.com/tierline-lab/tierline/internal/core/commission --output ./commission --outpkg commissionmocks --with-expecter
